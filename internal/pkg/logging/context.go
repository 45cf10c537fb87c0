package logging

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

type ctxKey struct{}

var fallback atomic.Pointer[zap.Logger]

func init() {
	fallback.Store(zap.NewNop())
}

// SetDefault replaces the logger returned when a context carries none.
func SetDefault(logger *zap.Logger) {
	if logger != nil {
		fallback.Store(logger)
	}
}

// Default returns the process-wide logger.
func Default() *zap.Logger {
	return fallback.Load()
}

// WithLogger stores the provided logger on the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request-scoped logger, or the default one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
