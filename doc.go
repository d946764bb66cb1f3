// Package netslab provides the indexed entity store behind a netlist graph.
//
// A Table[T] hands out dense integer indices for the elements it stores and
// keeps every index stable while its element is live. Pins, nets, gate
// instances and modules each live in their own table and refer to one another
// by index, which keeps side tables compact: a slice indexed by the same
// integers can hold per-element data without hashing.
//
// # Quick Start
//
//	gates := netslab.New[Gate]()
//	defer gates.Close()
//
//	u1, _ := gates.Insert(Gate{Name: "u1", Cell: "NAND2_X1"})
//	g, ok := gates.Get(u1)
//
//	gates.Remove(u1)      // u1 is recycled by the next insert
//	gates.Remove(u1)      // no-op
//
//	for i, g := range gates.All() {
//	    fmt.Println(i, g.Name)
//	}
//
// # Storage Model
//
//   - Slots: a doubling array of element pointers (initial capacity 8).
//   - Free list: a LIFO of vacated indices, consulted before the slot array
//     is extended, so the most recently freed index is reissued first.
//   - Allocator: the alloc package strategy that constructs elements on
//     insert and destroys them on remove (heap by default).
//
// Len reports live elements, NumIndices the number of indices ever issued
// including holes. NumIndices never decreases while the table is open.
//
// # Errors
//
// Looking up or removing an index that is out of range or already empty is
// not an error: Get reports absent, Remove is a no-op. Only a failure to
// obtain storage (allocator, budget or WithMaxIndices) is returned, as an
// *AllocationError, and leaves the table unchanged.
//
// # Stale Indices
//
// Indices are reused, so an index kept after its element was removed may
// silently name a newer element. Callers that cannot rule this out use the
// Handle API (InsertHandle, Resolve, RemoveHandle), which pairs each index
// with a per-slot generation and rejects stale handles.
//
// # Concurrency
//
// A Table performs no locking. Build and edit it from one goroutine, then
// read it from many: Get, At, the iterators and ForEachParallel are safe for
// concurrent use as long as nothing mutates the table meanwhile. Mixing
// mutation with concurrent reads needs external synchronization.
package netslab
