package fiber

import "context"

type contextKey string

const fiberContextKey contextKey = "fibers-fiber"

// NewContext returns a context carrying f as the currently running fiber.
// Run installs it before invoking the task so suspension primitives can find
// the fiber without global state.
func NewContext(ctx context.Context, f *Fiber) context.Context {
	return context.WithValue(ctx, fiberContextKey, f)
}

// FromContext returns the fiber running the current task, or nil when the
// caller is an ordinary goroutine.
func FromContext(ctx context.Context) *Fiber {
	f, _ := ctx.Value(fiberContextKey).(*Fiber)
	return f
}
