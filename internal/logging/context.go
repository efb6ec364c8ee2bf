package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerCtxKey struct{}

// WithLogger attaches logger to ctx. Formatting workers pick it up through
// FromContext so per-file messages carry the fields of the run.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext returns the logger attached by WithLogger, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey{}).(*log.Logger); ok {
			return logger
		}
	}
	return Default()
}
