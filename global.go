package fibers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofibers/fibers/internal/once"
	"github.com/gofibers/fibers/runtime/fiber"
	"github.com/gofibers/fibers/runtime/scheduler"
)

// ErrAlreadyInitialized is returned by TryInit once the global executor has
// been constructed, whether explicitly or by first use.
var ErrAlreadyInitialized = errors.New("fibers: global executor already initialized")

// Task is the unit of work accepted by the global executor.
type Task = fiber.Task

var global once.Cell[scheduler.Executor]

// executor returns the process-wide executor, constructing and starting it
// on first use. The executor lives for the remainder of the process; there
// is no teardown.
func executor() *scheduler.Executor {
	return global.Get(func() *scheduler.Executor {
		return newExecutor(nil)
	})
}

// newExecutor builds and starts an executor. Construction failure is fatal:
// nothing in the process can run fibers without it.
func newExecutor(config *Config) *scheduler.Executor {
	e, err := scheduler.New(config.options()...)
	if err != nil {
		panic(fmt.Sprintf("fibers: cannot create the global executor: %v", err))
	}
	e.Start(context.Background())
	return e
}

// TryInit constructs the global executor with the supplied configuration.
// To have an effect it must be called before any other operation in this
// package; once the executor exists by any path TryInit returns
// ErrAlreadyInitialized and the running executor, along with its in-flight
// fibers, is left untouched. A nil config uses the defaults.
func TryInit(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if !global.TryInit(func() *scheduler.Executor { return newExecutor(config) }) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Initialized reports whether the global executor has been constructed.
func Initialized() bool {
	return global.Ready()
}

// Spawn submits task to the global executor for independent execution and
// returns immediately. Task failures are not reported here; use a oneshot
// side channel when the result matters, or Execute.
func Spawn(task Task) {
	executor().Spawn(task)
}

// Execute submits task to the global executor and blocks the calling
// goroutine until it resolves, returning the resolved value. An ordinary
// failure comes back as the task's own error; a panic inside the task comes
// back as a *fiber.AbortError. Execute never deadlocks when called from
// inside a running fiber: the waiting goroutine keeps driving queued fibers
// until its own resolves.
func Execute(task Task) (any, error) {
	return executor().Execute(context.Background(), task)
}

// ExecuteTyped is a typed convenience over Execute.
func ExecuteTyped[T any](task func(ctx context.Context) (T, error)) (T, error) {
	value, err := Execute(func(ctx context.Context) (any, error) {
		return task(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, _ := value.(T)
	return typed, nil
}

// Handle returns a non-owning handle of the global executor, suitable for
// passing into components that must not depend on package-level state.
func Handle() scheduler.Handle {
	return executor().Handle()
}
