package fiber

// State represents the lifecycle state of a fiber.
type State string

const (
	// StateSubmitted indicates the fiber is queued and has not run yet.
	StateSubmitted State = "submitted"
	// StateRunning indicates the task is executing on some goroutine.
	StateRunning State = "running"
	// StateSuspended indicates the fiber is parked at a cooperative yield
	// point, e.g. awaiting a oneshot value or a nested execution.
	StateSuspended State = "suspended"
	// StateResolved indicates the task completed with a value.
	StateResolved State = "resolved"
	// StateFailed indicates the task completed with a failure value.
	StateFailed State = "failed"
	// StateAborted indicates the task panicked.
	StateAborted State = "aborted"
)

// Terminal reports whether the state is final. A fiber never leaves a
// terminal state; there is no cancelled state.
func (s State) Terminal() bool {
	switch s {
	case StateResolved, StateFailed, StateAborted:
		return true
	}
	return false
}
