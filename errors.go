package netslab

import (
	"errors"
	"fmt"

	"github.com/hupe1980/netslab/alloc"
	"github.com/hupe1980/netslab/internal/blockstore"
)

var (
	// ErrClosed is returned by Insert after Close.
	ErrClosed = errors.New("netslab: table is closed")

	// ErrAllocationFailed is wrapped by every AllocationError.
	ErrAllocationFailed = alloc.ErrAllocationFailed

	// ErrCapacityExceeded is returned when the table would grow past WithMaxIndices.
	ErrCapacityExceeded = blockstore.ErrCapacityExceeded

	// ErrMutatedDuringIteration is the panic value raised when a table is
	// structurally modified while one of its iterators is running.
	ErrMutatedDuringIteration = errors.New("netslab: table mutated during iteration")

	// ErrInvalidLayout is returned by Restore for an inconsistent Layout.
	ErrInvalidLayout = errors.New("netslab: invalid layout")
)

// AllocationError reports an insertion that could not obtain storage.
//
// The table is left exactly as it was before the failed call. The error
// matches ErrAllocationFailed and its cause (allocator, budget or capacity
// error) with errors.Is.
type AllocationError struct {
	// Op is the storage that could not be obtained: "element", "slots" or "free list".
	Op    string
	cause error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("netslab: allocate %s: %v", e.Op, e.cause)
}

func (e *AllocationError) Unwrap() []error {
	if errors.Is(e.cause, ErrAllocationFailed) {
		return []error{e.cause}
	}
	return []error{ErrAllocationFailed, e.cause}
}
