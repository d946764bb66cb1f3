// Package alloc provides the allocation strategies a netslab table uses to
// obtain, construct and destroy its elements.
//
// An Allocator hands out zero-valued storage for one element (default
// construction) and takes it back again (destruction). Destruction calls
// Destroy on elements that implement Destroyer, then zeroes the value so
// that released storage never keeps other objects reachable.
//
// # Strategies
//
//   - Heap: one new(T) per element; the default.
//   - Pool: recycles released storage through a sync.Pool.
//   - Arena: carves elements out of fixed-size chunks, bounded by MaxChunks.
//   - Budgeted: charges every element to a resource.Controller.
//   - Counting: counts constructions and destructions of a wrapped strategy.
//
// Strategies compose:
//
//	a := alloc.NewCounting[Gate](alloc.NewBudgeted[Gate](alloc.NewArena[Gate](1024), rc))
//	t := netslab.NewWithAllocator[Gate](a)
//
// None of the strategies are safe for concurrent use unless stated; a table
// mutates from a single goroutine.
package alloc
