package alloc

import (
	"unsafe"

	"github.com/hupe1980/netslab/resource"
)

// Budgeted charges every element it hands out to a resource.Controller.
//
// When the controller refuses the charge, New fails; the returned error
// satisfies both errors.Is(err, ErrAllocationFailed) and
// errors.Is(err, resource.ErrMemoryLimitExceeded).
type Budgeted[T any] struct {
	next Allocator[T]
	rc   *resource.Controller
	size int64
}

// NewBudgeted wraps next. A nil next selects Heap.
func NewBudgeted[T any](next Allocator[T], rc *resource.Controller) *Budgeted[T] {
	if next == nil {
		next = Heap[T]{}
	}
	var zero T
	size := int64(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	return &Budgeted[T]{next: next, rc: rc, size: size}
}

// New implements Allocator.
func (b *Budgeted[T]) New() (*T, error) {
	if err := b.rc.AcquireMemory(b.size); err != nil {
		return nil, failed("budget", err)
	}
	p, err := b.next.New()
	if err != nil {
		b.rc.ReleaseMemory(b.size)
		return nil, err
	}
	return p, nil
}

// Delete implements Allocator.
func (b *Budgeted[T]) Delete(p *T) {
	if p == nil {
		return
	}
	b.next.Delete(p)
	b.rc.ReleaseMemory(b.size)
}

// ElementSize returns the number of bytes charged per element.
func (b *Budgeted[T]) ElementSize() int64 {
	return b.size
}
