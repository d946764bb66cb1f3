package netslab

import "fmt"

// Handle names an element by index and generation.
//
// Every slot's generation is incremented when its element is removed, so a
// Handle taken before a remove/insert pair no longer resolves even though the
// index has been reissued. The zero Handle is valid only for the first
// element ever stored at index 0.
type Handle struct {
	Index int
	Gen   uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Index, h.Gen)
}

// InsertHandle stores a copy of v and returns a generation-checked handle.
func (t *Table[T]) InsertHandle(v T) (Handle, error) {
	idx, err := t.Insert(v)
	if err != nil {
		return Handle{}, err
	}
	return Handle{Index: idx, Gen: t.gens[idx]}, nil
}

// HandleOf returns the current handle of the live element at index i.
func (t *Table[T]) HandleOf(i int) (Handle, bool) {
	if !t.slots.Occupied(i) {
		return Handle{}, false
	}
	return Handle{Index: i, Gen: t.gens[i]}, true
}

// Resolve returns the element named by h, or false if h is stale or its
// index is not live.
func (t *Table[T]) Resolve(h Handle) (*T, bool) {
	if !t.valid(h) {
		return nil, false
	}
	return t.slots.Get(h.Index), true
}

// RemoveHandle removes the element named by h. A stale handle is a no-op.
func (t *Table[T]) RemoveHandle(h Handle) bool {
	if !t.valid(h) {
		t.opts.metrics.RecordRemove(false)
		return false
	}
	return t.Remove(h.Index)
}

func (t *Table[T]) valid(h Handle) bool {
	return t.slots.Occupied(h.Index) && t.gens[h.Index] == h.Gen
}
