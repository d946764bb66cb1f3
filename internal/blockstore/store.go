package blockstore

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
)

// DefaultCapacity is the slot capacity of a new Store.
const DefaultCapacity = 8

// ErrCapacityExceeded is returned when growth would pass the configured limit.
var ErrCapacityExceeded = errors.New("blockstore: capacity exceeded")

// GrowFunc is called before the slot array is reallocated from oldCap to
// newCap slots. Returning an error aborts growth without changing the store.
type GrowFunc func(oldCap, newCap int) error

// Store is a doubling array of element slots.
type Store[T any] struct {
	slots    []*T
	cursor   int
	occupied *bitset.BitSet
	limit    int
	onGrow   GrowFunc
	grows    int
}

// New creates a Store with the given initial capacity (at least 1) and an
// optional limit on total slots (0 = unlimited).
func New[T any](capacity, limit int) *Store[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if limit > 0 && capacity > limit {
		capacity = limit
	}
	return &Store[T]{
		slots:    make([]*T, capacity),
		occupied: bitset.New(uint(capacity)),
		limit:    limit,
	}
}

// OnGrow installs the hook run before every reallocation.
func (s *Store[T]) OnGrow(fn GrowFunc) {
	s.onGrow = fn
}

// Len returns the number of issued slots, including empty ones.
func (s *Store[T]) Len() int {
	return s.cursor
}

// Cap returns the current slot capacity.
func (s *Store[T]) Cap() int {
	return len(s.slots)
}

// Grows returns how many times the slot array has been reallocated.
func (s *Store[T]) Grows() int {
	return s.grows
}

// Extend issues the slot at the write cursor and returns its index. The slot
// is empty until Put. When the cursor has reached capacity the slot array is
// doubled first; on failure the store is unchanged.
func (s *Store[T]) Extend() (int, error) {
	if s.cursor == len(s.slots) {
		if err := s.grow(); err != nil {
			return 0, err
		}
	}
	idx := s.cursor
	s.cursor++
	return idx, nil
}

func (s *Store[T]) grow() error {
	oldCap := len(s.slots)
	newCap := oldCap << 1
	if s.limit > 0 && newCap > s.limit {
		newCap = s.limit
	}
	if newCap <= oldCap {
		return ErrCapacityExceeded
	}

	if s.onGrow != nil {
		if err := s.onGrow(oldCap, newCap); err != nil {
			return err
		}
	}

	slots := make([]*T, newCap)
	copy(slots, s.slots)
	s.slots = slots
	s.grows++
	return nil
}

// Get returns the element in slot i, or nil if i is out of range or empty.
func (s *Store[T]) Get(i int) *T {
	if i < 0 || i >= s.cursor {
		return nil
	}
	return s.slots[i]
}

// Occupied reports whether slot i holds an element.
func (s *Store[T]) Occupied(i int) bool {
	if i < 0 || i >= s.cursor {
		return false
	}
	return s.occupied.Test(uint(i))
}

// Put stores p in the issued, empty slot i.
func (s *Store[T]) Put(i int, p *T) {
	s.slots[i] = p
	s.occupied.Set(uint(i))
}

// Clear empties slot i and returns its former element (nil if it was empty
// or i is out of range).
func (s *Store[T]) Clear(i int) *T {
	if i < 0 || i >= s.cursor {
		return nil
	}
	p := s.slots[i]
	s.slots[i] = nil
	s.occupied.Clear(uint(i))
	return p
}

// Next returns the first occupied index >= from, below Len.
func (s *Store[T]) Next(from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from >= s.cursor {
		return 0, false
	}
	i, ok := s.occupied.NextSet(uint(from))
	if !ok || int(i) >= s.cursor {
		return 0, false
	}
	return int(i), true
}

// Count returns the number of occupied slots.
func (s *Store[T]) Count() int {
	return int(s.occupied.Count())
}

// Release drops every slot and resets the store to zero capacity.
// It returns the elements that were still occupied, in ascending order.
func (s *Store[T]) Release() []*T {
	var live []*T
	for i, ok := s.Next(0); ok; i, ok = s.Next(i + 1) {
		live = append(live, s.slots[i])
	}
	s.slots = nil
	s.cursor = 0
	s.occupied = bitset.New(0)
	return live
}
