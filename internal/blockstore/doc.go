// Package blockstore implements the slot array behind a netslab table.
//
// A Store is a contiguous array of slots, each either empty or holding one
// owned element pointer, plus an occupancy bitset. The number of issued
// slots (the write cursor) only grows; capacity doubles when the cursor
// reaches it. Growth reallocates and copies, so every previously issued index
// keeps naming the same slot.
package blockstore
