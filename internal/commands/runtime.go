package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// DefaultCommandTimeout bounds a run when the handler has no timeout of its own.
// Saves hit a single repository update, so this is generous.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext swaps a nil context for context.Background.
func EnsureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// WithCommandTimeout derives a bounded context. A non-positive timeout keeps
// the parent and returns a no-op cancel.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = EnsureContext(ctx)
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

// EnsureLogger swaps a nil logger for the no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger != nil {
		return logger
	}
	return logging.NoOp()
}
