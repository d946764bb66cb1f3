package netslab

import (
	"context"
	"unsafe"

	"github.com/hupe1980/netslab/alloc"
	"github.com/hupe1980/netslab/internal/blockstore"
	"github.com/hupe1980/netslab/internal/freelist"
)

// slotBytes is the bookkeeping charged per slot: the element pointer, its
// generation and its worst-case free-list entry.
const slotBytes = int64(unsafe.Sizeof(uintptr(0)) + unsafe.Sizeof(uint32(0)) + unsafe.Sizeof(int(0)))

// Table is an index-addressable store of T with O(1) insert, remove and
// lookup.
//
// Insert returns a dense integer index that stays valid, and keeps naming the
// same element, until that index is removed. Removed indices are recycled
// most-recently-freed first, so an index may name different elements over the
// table's lifetime; use the Handle API when stale indices must be detected.
//
// A Table is not safe for concurrent mutation. Any number of goroutines may
// call Get, At and the iterators concurrently as long as no goroutine mutates
// the table at the same time.
//
// Pointers returned by Get, At and the iterators are borrowed: they are valid
// until the same index is removed or the table is closed.
type Table[T any] struct {
	alloc   alloc.Allocator[T]
	slots   *blockstore.Store[T]
	free    *freelist.List
	gens    []uint32
	size    int
	version uint64
	charged int64
	closed  bool
	opts    options
}

// New creates a Table that allocates elements on the heap.
func New[T any](optFns ...Option) *Table[T] {
	return NewWithAllocator[T](nil, optFns...)
}

// NewWithAllocator creates a Table that obtains and destroys elements through
// a. A nil a selects alloc.Heap.
func NewWithAllocator[T any](a alloc.Allocator[T], optFns ...Option) *Table[T] {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.name != "" {
		o.logger = o.logger.WithTable(o.name)
	}
	if a == nil {
		a = alloc.Heap[T]{}
	}

	t := &Table[T]{
		alloc: a,
		slots: blockstore.New[T](o.initialCapacity, o.maxIndices),
		free:  freelist.New(o.initialCapacity),
		opts:  o,
	}
	t.gens = make([]uint32, t.slots.Cap())
	t.slots.OnGrow(t.onGrow)
	return t
}

func (t *Table[T]) onGrow(oldCap, newCap int) error {
	bytes := int64(newCap-oldCap) * slotBytes
	if err := t.opts.rc.AcquireMemory(bytes); err != nil {
		t.opts.logger.LogGrow(context.Background(), "slots", oldCap, newCap, err)
		return err
	}
	t.charged += bytes

	gens := make([]uint32, newCap)
	copy(gens, t.gens)
	t.gens = gens

	t.opts.metrics.RecordGrow(oldCap, newCap)
	t.opts.logger.LogGrow(context.Background(), "slots", oldCap, newCap, nil)
	return nil
}

// Insert stores a copy of v and returns its index.
func (t *Table[T]) Insert(v T) (int, error) {
	return t.InsertFunc(func(p *T) { *p = v })
}

// InsertFunc constructs a new element in place and returns its index.
// The element starts as the zero T; init, if not nil, then fills it in.
//
// A recycled index is preferred over extending the table. If storage cannot
// be obtained the table is left unchanged and an *AllocationError is returned.
func (t *Table[T]) InsertFunc(init func(*T)) (int, error) {
	if t.closed {
		return 0, ErrClosed
	}

	p, err := t.alloc.New()
	if err != nil {
		return 0, t.insertFailed(&AllocationError{Op: "element", cause: err})
	}
	if init != nil {
		init(p)
	}

	idx, reused := t.free.Pop()
	if !reused {
		idx, err = t.slots.Extend()
		if err != nil {
			t.alloc.Delete(p)
			return 0, t.insertFailed(&AllocationError{Op: "slots", cause: err})
		}
	}

	t.slots.Put(idx, p)
	t.size++
	t.version++
	t.opts.metrics.RecordInsert(reused, nil)
	return idx, nil
}

func (t *Table[T]) insertFailed(err *AllocationError) error {
	t.opts.metrics.RecordInsert(false, err)
	t.opts.logger.LogAllocFailure(context.Background(), t.size, t.slots.Len(), err)
	return err
}

// Remove destroys the element at index i and recycles the index.
// It reports whether an element was removed; an out-of-range or already
// empty index is a no-op.
func (t *Table[T]) Remove(i int) bool {
	if !t.slots.Occupied(i) {
		t.opts.metrics.RecordRemove(false)
		return false
	}

	// Grow the free list before touching the slot so a failed growth leaves
	// the table intact.
	t.free.Reserve()
	p := t.slots.Clear(i)
	t.free.Push(i)
	t.gens[i]++
	t.size--
	t.version++
	t.opts.metrics.RecordRemove(true)

	t.alloc.Delete(p)
	return true
}

// Get returns the element at index i.
func (t *Table[T]) Get(i int) (*T, bool) {
	p := t.slots.Get(i)
	return p, p != nil
}

// At returns the element at index i, or nil if i names no live element.
func (t *Table[T]) At(i int) *T {
	return t.slots.Get(i)
}

// Contains reports whether index i names a live element.
func (t *Table[T]) Contains(i int) bool {
	return t.slots.Occupied(i)
}

// Len returns the number of live elements.
func (t *Table[T]) Len() int {
	return t.size
}

// NumIndices returns the number of indices ever issued, including holes.
// It never decreases until the table is closed.
func (t *Table[T]) NumIndices() int {
	return t.slots.Len()
}

// Cap returns the current slot capacity.
func (t *Table[T]) Cap() int {
	return t.slots.Cap()
}

// Closed reports whether Close has been called.
func (t *Table[T]) Closed() bool {
	return t.closed
}

// Close destroys every live element exactly once and releases the table's
// storage and budget. Close is idempotent.
func (t *Table[T]) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.version++

	numIndices := t.slots.Len()
	live := t.slots.Release()
	t.free.Reset()
	t.gens = nil
	t.size = 0

	for _, p := range live {
		t.alloc.Delete(p)
	}

	t.opts.rc.ReleaseMemory(t.charged)
	t.charged = 0
	t.opts.logger.LogClose(context.Background(), len(live), numIndices)
}
