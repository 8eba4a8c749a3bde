package scheduler

import (
	"context"

	"github.com/gofibers/fibers/runtime/fiber"
)

// Handle is a cheap, copyable reference to an Executor. It does not own the
// executor; it exists so that code which must not reach for package-level
// state can still be handed a way to submit work.
type Handle struct {
	executor *Executor
}

// Handle returns a non-owning handle of e.
func (e *Executor) Handle() Handle {
	return Handle{executor: e}
}

// Spawn behaves exactly like Executor.Spawn.
func (h Handle) Spawn(task fiber.Task) {
	h.executor.Spawn(task)
}

// Submit behaves exactly like Executor.Submit.
func (h Handle) Submit(task fiber.Task) *fiber.Fiber {
	return h.executor.Submit(task)
}

// Execute behaves exactly like Executor.Execute.
func (h Handle) Execute(ctx context.Context, task fiber.Task) (any, error) {
	return h.executor.Execute(ctx, task)
}

// Executor returns the referenced executor.
func (h Handle) Executor() *Executor {
	return h.executor
}
