// Package freelist implements the LIFO stack of recycled slot indices used by
// netslab tables.
package freelist

// DefaultCapacity is the initial capacity of a new List.
const DefaultCapacity = 8

// List is a LIFO stack of indices with doubling growth.
// It never deduplicates; callers must not push an index twice without an
// intervening Pop.
type List struct {
	items  []int
	cursor int
}

// New creates a List with the given initial capacity.
func New(capacity int) *List {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &List{items: make([]int, capacity)}
}

// Reserve makes sure the next Push will not need to grow.
func (l *List) Reserve() {
	if l.cursor == len(l.items) {
		items := make([]int, max(len(l.items)<<1, DefaultCapacity))
		copy(items, l.items)
		l.items = items
	}
}

// Push adds idx to the top of the stack.
func (l *List) Push(idx int) {
	l.Reserve()
	l.items[l.cursor] = idx
	l.cursor++
}

// Pop removes and returns the most recently pushed index.
func (l *List) Pop() (int, bool) {
	if l.cursor == 0 {
		return 0, false
	}
	l.cursor--
	return l.items[l.cursor], true
}

// Peek returns the index the next Pop would return.
func (l *List) Peek() (int, bool) {
	if l.cursor == 0 {
		return 0, false
	}
	return l.items[l.cursor-1], true
}

// Len returns the number of indices on the stack.
func (l *List) Len() int {
	return l.cursor
}

// Cap returns the current backing capacity.
func (l *List) Cap() int {
	return len(l.items)
}

// Values returns a copy of the stack, bottom first.
func (l *List) Values() []int {
	out := make([]int, l.cursor)
	copy(out, l.items[:l.cursor])
	return out
}

// Reset empties the list and drops its backing storage.
func (l *List) Reset() {
	l.items = nil
	l.cursor = 0
}
