package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/gofibers/fibers/runtime/fiber"
	"github.com/gofibers/fibers/runtime/queue"
	"github.com/gofibers/fibers/tracing"
)

// Config represents executor configuration.
type Config struct {
	// WorkerCount is the number of workers pulling fibers off the run queue.
	WorkerCount int

	// QueueBuffer is the run queue capacity hint.
	QueueBuffer int
}

// DefaultConfig returns the default executor configuration; the worker count
// follows the host parallelism.
func DefaultConfig() Config {
	return Config{
		WorkerCount: runtime.NumCPU(),
		QueueBuffer: queue.DefaultConfig().Buffer,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("workerCount must be > 0")
	}
	if c.QueueBuffer < 0 {
		return fmt.Errorf("queueBuffer must be >= 0")
	}
	return nil
}

// Executor runs fibers on a fixed pool of workers sharing one run queue.
// A caller blocked in Execute steals queued fibers and runs them on its own
// goroutine, so a saturated pool keeps making progress no matter how many
// callers are waiting.
type Executor struct {
	config Config
	queue  *queue.Queue[fiber.Fiber]
	logger zerolog.Logger

	workers  []*worker
	workerWg sync.WaitGroup

	inFlight atomic.Int64
}

type worker struct {
	id       int
	executor *Executor
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates an executor.
func New(options ...Option) (*Executor, error) {
	e := &Executor{
		config: DefaultConfig(),
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.ErrorLevel),
	}
	for _, opt := range options {
		opt(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	if e.queue == nil {
		e.queue = queue.New[fiber.Fiber](queue.Config{Buffer: e.config.QueueBuffer})
	}
	return e, nil
}

// Start launches the worker pool. Workers run until ctx is cancelled; the
// process-wide executor passes a context that lives as long as the process.
func (e *Executor) Start(ctx context.Context) {
	for i := 0; i < e.config.WorkerCount; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{
			id:       i,
			executor: e,
			ctx:      workerCtx,
			cancelFn: cancel,
		}
		e.workers = append(e.workers, w)
		e.workerWg.Add(1)
		go w.run()
	}
}

// Shutdown stops the workers and waits for them to exit. The process-wide
// executor is never shut down; this exists for tests and embedded uses that
// own their executor instance.
func (e *Executor) Shutdown() {
	for _, w := range e.workers {
		w.cancelFn()
	}
	e.workerWg.Wait()
}

// run pulls fibers from the run queue until the worker context is cancelled.
func (w *worker) run() {
	defer w.executor.workerWg.Done()

	for {
		f, err := w.executor.queue.Consume(w.ctx)
		if err != nil {
			return
		}
		w.executor.runFiber(w.ctx, f)
	}
}

// runFiber drives a fiber to its terminal state on the calling goroutine and
// settles the in-flight accounting. Aborts are logged; failure values are
// the submitter's business and are not.
func (e *Executor) runFiber(ctx context.Context, f *fiber.Fiber) {
	f.Run(ctx)
	e.inFlight.Add(-1)

	if out := f.Outcome(); out.Aborted() {
		var abort *fiber.AbortError
		if errors.As(out.Err, &abort) {
			e.logger.Error().
				Str("fiber", f.ID()).
				Interface("reason", abort.Reason).
				Bytes("stack", abort.Stack).
				Msg("fiber aborted")
		}
	}
}

// Spawn submits task for independent execution and returns immediately.
// The task's failure, if any, is not reported here; use a side channel such
// as oneshot when the submitter cares, or Execute.
func (e *Executor) Spawn(task fiber.Task) {
	e.Submit(task)
}

// Submit submits task and returns the fiber monitoring its execution.
func (e *Executor) Submit(task fiber.Task) *fiber.Fiber {
	f := fiber.New(task)
	f.SetYield(e.stealOne)

	_, span := tracing.StartSpan(context.Background(), "executor.Submit", "PRODUCER")
	span.WithAttributes(map[string]string{"fiber.id": f.ID()})

	e.inFlight.Add(1)
	e.queue.Publish(f)
	tracing.EndSpan(span, nil)
	return f
}

// Execute submits task and blocks the calling goroutine until the fiber
// reaches a terminal state, returning its resolved value or error. While
// waiting, the caller runs queued fibers inline, so Execute is safe to call
// from inside a running fiber even when every worker is busy.
//
// Cancelling ctx abandons the wait, not the fiber: the submitted task still
// runs to completion on the executor.
func (e *Executor) Execute(ctx context.Context, task fiber.Task) (any, error) {
	_, span := tracing.StartSpan(ctx, "executor.Execute", "INTERNAL")

	f := e.Submit(task)
	span.WithAttributes(map[string]string{"fiber.id": f.ID()})

	// A fiber blocked here is at a cooperative yield point.
	if current := fiber.FromContext(ctx); current != nil {
		current.Suspend()
		defer current.Resume()
	}

	// Fibers stolen by this wait must not inherit the caller's cancellation.
	runCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-f.Done():
			out := f.Outcome()
			tracing.EndSpan(span, out.Err)
			return out.Value, out.Err
		default:
		}

		// Local scheduling step: keep the executor moving on this goroutine
		// while the awaited fiber is still in flight.
		if other, ok := e.queue.TryConsume(); ok {
			e.runFiber(runCtx, other)
			continue
		}

		select {
		case <-f.Done():
			out := f.Outcome()
			tracing.EndSpan(span, out.Err)
			return out.Value, out.Err
		case other := <-e.queue.C():
			e.runFiber(runCtx, other)
		case <-ctx.Done():
			tracing.EndSpan(span, ctx.Err())
			return nil, ctx.Err()
		}
	}
}

// stealOne runs a single queued fiber on the calling goroutine, reporting
// whether one was pending. Installed on every fiber as its yield hook.
func (e *Executor) stealOne() bool {
	other, ok := e.queue.TryConsume()
	if !ok {
		return false
	}
	e.runFiber(context.Background(), other)
	return true
}

// InFlight returns the number of fibers submitted but not yet terminal.
func (e *Executor) InFlight() int64 {
	return e.inFlight.Load()
}

// WorkerCount returns the number of workers.
func (e *Executor) WorkerCount() int {
	return e.config.WorkerCount
}

// QueuedFiberCount returns the number of fibers waiting in the run queue.
func (e *Executor) QueuedFiberCount() int {
	return e.queue.Size()
}
