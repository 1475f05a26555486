package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithRunID tags ctx and its logger with the id of one CLI run.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return withStrings(ctx, "run_id", runID)
}

// RunID returns the run id stored by WithRunID, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithInput tags the logger with the bibliography file being processed.
func WithInput(ctx context.Context, path string) context.Context {
	return withStrings(ctx, "input", path)
}

// WithOperation tags the logger with complete or ingest.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withStrings(ctx, "operation", operation)
}

// WithEntry tags the logger with a bibliography entry id.
func WithEntry(ctx context.Context, entryID string) context.Context {
	return withStrings(ctx, "entry_id", entryID)
}

// WithVenue tags the logger with an entry's raw venue and year.
func WithVenue(ctx context.Context, venue, year string) context.Context {
	return withStrings(ctx, "venue", venue, "year", year)
}

// withStrings derives a logger carrying the key/value pairs kv.
func withStrings(ctx context.Context, kv ...string) context.Context {
	c := FromContext(ctx).With()
	for i := 0; i+1 < len(kv); i += 2 {
		c = c.Str(kv[i], kv[i+1])
	}
	logger := c.Logger()
	return WithLogger(ctx, &logger)
}
