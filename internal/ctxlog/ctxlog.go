// Package ctxlog carries the run's *slog.Logger through context.Context so
// every pipeline stage logs with the attributes of the run that called it.
package ctxlog

import (
	"context"
	"log/slog"
)

type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, or returns slog.Default when
// none was embedded.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Stage returns a context whose logger tags every record with the
// pipeline stage name.
func Stage(ctx context.Context, stage string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With("stage", stage))
}
