package alloc

import "sync"

// Pool recycles released element storage through a sync.Pool.
//
// It suits tables with heavy insert/remove churn, such as incremental netlist
// edits, where the same element type is constructed and destroyed repeatedly.
type Pool[T any] struct {
	pool sync.Pool
}

// NewPool creates a pool-backed allocator.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return new(T) },
		},
	}
}

// New implements Allocator.
func (p *Pool[T]) New() (*T, error) {
	return p.pool.Get().(*T), nil
}

// Delete implements Allocator. Storage is zeroed before it is pooled.
func (p *Pool[T]) Delete(v *T) {
	if v == nil {
		return
	}
	Destroy(v)
	p.pool.Put(v)
}
