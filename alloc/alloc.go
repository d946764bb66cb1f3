package alloc

import (
	"errors"
	"fmt"
)

// ErrAllocationFailed is wrapped by every error an Allocator returns.
var ErrAllocationFailed = errors.New("alloc: allocation failed")

// Allocator obtains storage for single elements and releases it.
type Allocator[T any] interface {
	// New returns storage holding a zero T.
	New() (*T, error)
	// Delete destroys the value at p and releases its storage.
	// p must not be used afterwards.
	Delete(p *T)
}

// Destroyer is implemented by element types that own resources which must be
// released when the element is removed from its table.
type Destroyer interface {
	Destroy()
}

// Destroy runs the element's destructor, if any, and zeroes the value.
func Destroy[T any](p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

func failed(strategy string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrAllocationFailed, strategy, cause)
}

// Heap allocates every element with new(T).
type Heap[T any] struct{}

// New implements Allocator.
func (Heap[T]) New() (*T, error) {
	return new(T), nil
}

// Delete implements Allocator. The storage is left to the garbage collector.
func (Heap[T]) Delete(p *T) {
	Destroy(p)
}
