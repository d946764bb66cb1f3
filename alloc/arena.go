package alloc

import "errors"

// ErrArenaExhausted is returned when the arena would exceed MaxChunks.
var ErrArenaExhausted = errors.New("arena: max chunks exceeded")

const (
	// DefaultChunkCells is the number of elements per arena chunk.
	DefaultChunkCells = 1024
	// DefaultMaxChunks limits arena growth when no limit is configured.
	DefaultMaxChunks = 1 << 16
)

// ArenaStats tracks arena usage.
type ArenaStats struct {
	Chunks   int // chunks currently held
	InUse    int // cells handed out and not yet deleted
	Released int // cells waiting for reuse
	Capacity int // total cells across all chunks
}

// Arena allocates elements from fixed-size chunks of contiguous storage.
//
// Cells are never returned to the runtime individually: a deleted cell goes on
// a LIFO and is reused by the next New. All storage is dropped by Reset.
// Element addresses are stable for the lifetime of the chunk.
type Arena[T any] struct {
	chunkCells int
	maxChunks  int
	chunks     [][]T
	cursor     int // next unused cell in the last chunk
	released   []*T
	inUse      int
}

// ArenaOption configures an Arena.
type ArenaOption func(*arenaOptions)

type arenaOptions struct {
	maxChunks int
}

// WithMaxChunks bounds the number of chunks the arena may hold.
func WithMaxChunks(n int) ArenaOption {
	return func(o *arenaOptions) {
		o.maxChunks = n
	}
}

// NewArena creates an arena with chunkCells elements per chunk.
// A non-positive chunkCells selects DefaultChunkCells.
func NewArena[T any](chunkCells int, opts ...ArenaOption) *Arena[T] {
	if chunkCells <= 0 {
		chunkCells = DefaultChunkCells
	}
	o := arenaOptions{maxChunks: DefaultMaxChunks}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxChunks <= 0 {
		o.maxChunks = DefaultMaxChunks
	}
	return &Arena[T]{
		chunkCells: chunkCells,
		maxChunks:  o.maxChunks,
	}
}

// New implements Allocator.
func (a *Arena[T]) New() (*T, error) {
	if n := len(a.released); n > 0 {
		p := a.released[n-1]
		a.released[n-1] = nil
		a.released = a.released[:n-1]
		a.inUse++
		return p, nil
	}

	if len(a.chunks) == 0 || a.cursor == a.chunkCells {
		if len(a.chunks) >= a.maxChunks {
			return nil, failed("arena", ErrArenaExhausted)
		}
		a.chunks = append(a.chunks, make([]T, a.chunkCells))
		a.cursor = 0
	}

	p := &a.chunks[len(a.chunks)-1][a.cursor]
	a.cursor++
	a.inUse++
	return p, nil
}

// Delete implements Allocator. The cell is zeroed and queued for reuse.
func (a *Arena[T]) Delete(p *T) {
	if p == nil {
		return
	}
	Destroy(p)
	a.released = append(a.released, p)
	a.inUse--
}

// Reset drops every chunk. Pointers handed out earlier must no longer be used.
func (a *Arena[T]) Reset() {
	a.chunks = nil
	a.released = nil
	a.cursor = 0
	a.inUse = 0
}

// Stats returns the current arena statistics.
func (a *Arena[T]) Stats() ArenaStats {
	return ArenaStats{
		Chunks:   len(a.chunks),
		InUse:    a.inUse,
		Released: len(a.released),
		Capacity: len(a.chunks) * a.chunkCells,
	}
}
