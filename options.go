package netslab

import (
	"github.com/hupe1980/netslab/internal/blockstore"
	"github.com/hupe1980/netslab/resource"
)

type options struct {
	name            string
	initialCapacity int
	maxIndices      int
	logger          *Logger
	metrics         MetricsCollector
	rc              *resource.Controller
}

func defaultOptions() options {
	return options{
		initialCapacity: blockstore.DefaultCapacity,
		logger:          NoopLogger(),
		metrics:         NoopMetricsCollector{},
	}
}

// Option configures a Table.
type Option func(*options)

// WithName labels the table in log records.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithInitialCapacity sets the number of slots allocated up front.
// Values below 1 select the default of 8.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = blockstore.DefaultCapacity
		}
		o.initialCapacity = n
	}
}

// WithMaxIndices caps NumIndices. Inserting beyond the cap fails with
// ErrCapacityExceeded; recycled indices remain available. 0 means unlimited.
func WithMaxIndices(n int) Option {
	return func(o *options) {
		o.maxIndices = max(n, 0)
	}
}

// WithLogger sets the logger. Tables log nothing by default.
//
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithResourceController charges slot growth beyond the initial capacity to
// rc. A refused charge makes the inserting call fail with an AllocationError.
// Element storage is budgeted separately with alloc.Budgeted.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}
