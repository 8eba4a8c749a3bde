package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/gofibers/fibers/runtime/fiber"
	"github.com/gofibers/fibers/runtime/queue"
)

// Option customises an Executor.
type Option func(e *Executor)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(e *Executor) { e.config = config }
}

// WithWorkerCount sets the number of workers.
func WithWorkerCount(count int) Option {
	return func(e *Executor) { e.config.WorkerCount = count }
}

// WithQueueBuffer sets the run queue capacity hint.
func WithQueueBuffer(buffer int) Option {
	return func(e *Executor) { e.config.QueueBuffer = buffer }
}

// WithQueue sets the run queue.
func WithQueue(q *queue.Queue[fiber.Fiber]) Option {
	return func(e *Executor) { e.queue = q }
}

// WithLogger sets the logger used by workers.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}
