package netslab

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/netslab/alloc"
)

// Stats describes a table's storage.
type Stats struct {
	Live         int  // live elements
	NumIndices   int  // issued indices, including holes
	Capacity     int  // slot capacity
	Free         int  // recycled indices waiting for reuse
	FreeCapacity int  // free-list capacity
	Grows        int  // slot reallocations
	Closed       bool // Close was called
}

// Stats returns the current storage statistics.
func (t *Table[T]) Stats() Stats {
	return Stats{
		Live:         t.size,
		NumIndices:   t.slots.Len(),
		Capacity:     t.slots.Cap(),
		Free:         t.free.Len(),
		FreeCapacity: t.free.Cap(),
		Grows:        t.slots.Grows(),
		Closed:       t.closed,
	}
}

// LiveSet returns the set of live indices as a roaring bitmap.
// Indices must fit in uint32; use WithMaxIndices to enforce that.
func (t *Table[T]) LiveSet() *roaring.Bitmap {
	rb := roaring.New()
	for i := range t.Indices() {
		rb.Add(uint32(i))
	}
	return rb
}

// Layout is the shape of a table's index space: how many indices were
// issued and which of them are waiting for reuse, in push order.
type Layout struct {
	NumIndices int
	Free       []int // bottom of the free list first; the last entry is reused next
}

// Layout returns the table's current layout.
func (t *Table[T]) Layout() Layout {
	return Layout{
		NumIndices: t.slots.Len(),
		Free:       t.free.Values(),
	}
}

// Validate checks that every free index is in range and listed once.
func (l Layout) Validate() error {
	if l.NumIndices < 0 {
		return fmt.Errorf("%w: negative index count %d", ErrInvalidLayout, l.NumIndices)
	}
	if len(l.Free) > l.NumIndices {
		return fmt.Errorf("%w: %d free indices for %d slots", ErrInvalidLayout, len(l.Free), l.NumIndices)
	}
	seen := make(map[int]struct{}, len(l.Free))
	for _, idx := range l.Free {
		if idx < 0 || idx >= l.NumIndices {
			return fmt.Errorf("%w: free index %d out of range", ErrInvalidLayout, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: free index %d listed twice", ErrInvalidLayout, idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// Restore creates a heap-allocated table with the given layout. Every index
// not on the free list holds a zero T, ready to be filled in through At.
// The restored table reissues free indices in the same order as the table
// the layout was taken from. Generations restart.
func Restore[T any](layout Layout, optFns ...Option) (*Table[T], error) {
	return RestoreWithAllocator[T](nil, layout, optFns...)
}

// RestoreWithAllocator is Restore with an explicit allocation strategy.
func RestoreWithAllocator[T any](a alloc.Allocator[T], layout Layout, optFns ...Option) (*Table[T], error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	t := NewWithAllocator(a, optFns...)
	for i := 0; i < layout.NumIndices; i++ {
		if _, err := t.InsertFunc(nil); err != nil {
			t.Close()
			return nil, err
		}
	}
	for _, idx := range layout.Free {
		t.Remove(idx)
	}
	return t, nil
}
