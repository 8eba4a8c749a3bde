package fiber

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gofibers/fibers/internal/clock"
	"github.com/gofibers/fibers/internal/idgen"
)

// Task is a unit of asynchronous work. It receives the context of the
// executor (or of the blocking caller driving it inline) and returns the
// resolved value or a failure.
type Task func(ctx context.Context) (any, error)

// Fiber is a single execution of a Task, owned by the executor from the
// moment it is submitted until it reaches a terminal state.
type Fiber struct {
	id   string
	task Task

	mu          sync.Mutex
	state       State
	value       any
	err         error
	submittedAt time.Time
	startedAt   time.Time
	doneAt      time.Time

	yield func() bool

	done chan struct{}
}

// New creates a fiber in the Submitted state.
func New(task Task) *Fiber {
	return &Fiber{
		id:          idgen.New(),
		task:        task,
		state:       StateSubmitted,
		submittedAt: clock.Now(),
		done:        make(chan struct{}),
	}
}

// ID returns the fiber identifier.
func (f *Fiber) ID() string {
	return f.id
}

// State returns the current lifecycle state.
func (f *Fiber) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done returns a channel closed once the fiber reaches a terminal state.
// Closing happens after the outcome is published, so a receive on Done
// happens-before Outcome observing the terminal value.
func (f *Fiber) Done() <-chan struct{} {
	return f.done
}

// Outcome returns the terminal result. It must only be called after Done is
// closed.
func (f *Fiber) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Outcome{Value: f.value, Err: f.err}
}

// SubmittedAt returns the submission timestamp.
func (f *Fiber) SubmittedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submittedAt
}

// StartedAt returns the time the fiber first started running; zero while
// still queued.
func (f *Fiber) StartedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startedAt
}

// DoneAt returns the time the fiber reached a terminal state; zero before.
func (f *Fiber) DoneAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doneAt
}

// SetYield installs the hook a parked fiber uses to run other queued fibers
// on its own goroutine. The executor installs it before the fiber is
// published; it must not be changed afterwards.
func (f *Fiber) SetYield(fn func() bool) {
	f.yield = fn
}

// Yield runs one queued fiber if any is pending, reporting whether it did.
// Suspension primitives call it while parked so that a saturated worker pool
// keeps making progress.
func (f *Fiber) Yield() bool {
	if f.yield == nil {
		return false
	}
	return f.yield()
}

// Suspend marks the fiber as parked at a cooperative yield point. No-op
// unless the fiber is Running.
func (f *Fiber) Suspend() {
	f.mu.Lock()
	if f.state == StateRunning {
		f.state = StateSuspended
	}
	f.mu.Unlock()
}

// Resume reverses Suspend.
func (f *Fiber) Resume() {
	f.mu.Lock()
	if f.state == StateSuspended {
		f.state = StateRunning
	}
	f.mu.Unlock()
}

// Run executes the task on the calling goroutine and drives the fiber to a
// terminal state: Resolved on success, Failed on an ordinary failure value,
// Aborted when the task panics. Run is a no-op when called more than once.
func (f *Fiber) Run(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateSubmitted {
		f.mu.Unlock()
		return
	}
	f.state = StateRunning
	f.startedAt = clock.Now()
	f.mu.Unlock()

	ctx = NewContext(ctx, f)

	var (
		value any
		err   error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &AbortError{Reason: r, Stack: debug.Stack()}
			}
		}()
		value, err = f.task(ctx)
	}()
	if err != nil {
		value = nil
	}

	f.mu.Lock()
	f.value = value
	f.err = err
	switch {
	case err == nil:
		f.state = StateResolved
	case IsAbort(err):
		f.state = StateAborted
	default:
		f.state = StateFailed
	}
	f.doneAt = clock.Now()
	f.mu.Unlock()

	close(f.done)
}
