package alloc

import "sync/atomic"

// Counting wraps an allocator and counts constructions and destructions.
type Counting[T any] struct {
	next        Allocator[T]
	constructed atomic.Int64
	destroyed   atomic.Int64
	failures    atomic.Int64
}

// NewCounting wraps next. A nil next selects Heap.
func NewCounting[T any](next Allocator[T]) *Counting[T] {
	if next == nil {
		next = Heap[T]{}
	}
	return &Counting[T]{next: next}
}

// New implements Allocator.
func (c *Counting[T]) New() (*T, error) {
	p, err := c.next.New()
	if err != nil {
		c.failures.Add(1)
		return nil, err
	}
	c.constructed.Add(1)
	return p, nil
}

// Delete implements Allocator.
func (c *Counting[T]) Delete(p *T) {
	if p == nil {
		return
	}
	c.next.Delete(p)
	c.destroyed.Add(1)
}

// Constructed returns the number of successful New calls.
func (c *Counting[T]) Constructed() int64 { return c.constructed.Load() }

// Destroyed returns the number of Delete calls.
func (c *Counting[T]) Destroyed() int64 { return c.destroyed.Load() }

// Failures returns the number of failed New calls.
func (c *Counting[T]) Failures() int64 { return c.failures.Load() }

// Live returns constructions minus destructions.
func (c *Counting[T]) Live() int64 { return c.Constructed() - c.Destroyed() }
