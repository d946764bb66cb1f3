// Package resource budgets memory and IO for netslab tables and snapshots.
//
// A Controller provides two independent limits:
//
//   - Memory: a hard byte budget charged by table growth and by
//     alloc.Budgeted element allocations (non-blocking, fail-fast)
//   - IO: a token bucket that throttles snapshot reads and writes
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 32 << 20,
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops. This
// keeps budgeting optional without nil checks at every call site.
package resource
