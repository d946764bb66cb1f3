package netslab

import (
	"context"
	"iter"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// All returns an iterator over every live element and its index, in
// ascending index order.
//
// The iterator is lazy and restartable. It walks the table as it is when the
// traversal starts; inserting into or removing from the table before the
// traversal finishes is not supported and makes the iterator panic with
// ErrMutatedDuringIteration.
func (t *Table[T]) All() iter.Seq2[int, *T] {
	return t.Range(0, math.MaxInt)
}

// Range is like All but limited to indices in [lo, hi).
func (t *Table[T]) Range(lo, hi int) iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		version := t.version
		end := min(hi, t.slots.Len())
		for i, ok := t.slots.Next(lo); ok && i < end; i, ok = t.slots.Next(i + 1) {
			if !yield(i, t.slots.Get(i)) {
				return
			}
			if t.version != version {
				panic(ErrMutatedDuringIteration)
			}
		}
	}
}

// Values returns an iterator over every live element in ascending index order.
func (t *Table[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Indices returns an iterator over every live index in ascending order.
func (t *Table[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range t.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// ForEachParallel calls fn for every live element, splitting the index space
// into disjoint contiguous ranges that are visited by up to workers
// goroutines. workers <= 0 selects GOMAXPROCS.
//
// It is meant for the read-only phase that follows building a table: neither
// fn nor any other goroutine may mutate the table until ForEachParallel
// returns. The first error returned by fn cancels the remaining ranges and is
// returned.
func (t *Table[T]) ForEachParallel(ctx context.Context, workers int, fn func(ctx context.Context, i int, v *T) error) error {
	n := t.slots.Len()
	if n == 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	span := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += span {
		hi := min(lo+span, n)
		g.Go(func() error {
			for i, v := range t.Range(lo, hi) {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(gctx, i, v); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
