package netslab

import "sync/atomic"

// MetricsCollector receives table events.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously on the mutating goroutine and must be cheap.
type MetricsCollector interface {
	// RecordInsert is called after each insert. reused reports whether the
	// index came from the free list; err is non-nil on allocation failure.
	RecordInsert(reused bool, err error)

	// RecordRemove is called after each Remove. hit is false for no-op removals.
	RecordRemove(hit bool)

	// RecordGrow is called after slot storage was reallocated.
	RecordGrow(oldCap, newCap int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(bool, error) {}
func (NoopMetricsCollector) RecordRemove(bool)        {}
func (NoopMetricsCollector) RecordGrow(int, int)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe to read concurrently with the table that feeds it.
type BasicMetricsCollector struct {
	Inserts       atomic.Int64
	ReusedInserts atomic.Int64
	InsertErrors  atomic.Int64
	Removes       atomic.Int64
	NoopRemoves   atomic.Int64
	Grows         atomic.Int64
	LastCapacity  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(reused bool, err error) {
	if err != nil {
		b.InsertErrors.Add(1)
		return
	}
	b.Inserts.Add(1)
	if reused {
		b.ReusedInserts.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(hit bool) {
	if hit {
		b.Removes.Add(1)
		return
	}
	b.NoopRemoves.Add(1)
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(_, newCap int) {
	b.Grows.Add(1)
	b.LastCapacity.Store(int64(newCap))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Inserts:       b.Inserts.Load(),
		ReusedInserts: b.ReusedInserts.Load(),
		InsertErrors:  b.InsertErrors.Load(),
		Removes:       b.Removes.Load(),
		NoopRemoves:   b.NoopRemoves.Load(),
		Grows:         b.Grows.Load(),
		LastCapacity:  b.LastCapacity.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Inserts       int64
	ReusedInserts int64
	InsertErrors  int64
	Removes       int64
	NoopRemoves   int64
	Grows         int64
	LastCapacity  int64
}
