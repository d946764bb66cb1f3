package netslab

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with netslab-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithTable tags every record with a table name.
func (l *Logger) WithTable(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", name),
	}
}

// LogGrow logs a reallocation of slot or free-list storage.
func (l *Logger) LogGrow(ctx context.Context, kind string, oldCap, newCap int, err error) {
	if err != nil {
		l.WarnContext(ctx, "grow refused",
			"kind", kind,
			"old_cap", oldCap,
			"new_cap", newCap,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "grow",
		"kind", kind,
		"old_cap", oldCap,
		"new_cap", newCap,
	)
}

// LogAllocFailure logs an insertion that failed to obtain storage.
func (l *Logger) LogAllocFailure(ctx context.Context, live, numIndices int, err error) {
	l.ErrorContext(ctx, "insert failed",
		"live", live,
		"num_indices", numIndices,
		"error", err,
	)
}

// LogClose logs the destruction of a table.
func (l *Logger) LogClose(ctx context.Context, destroyed, numIndices int) {
	l.DebugContext(ctx, "table closed",
		"destroyed", destroyed,
		"num_indices", numIndices,
	)
}
