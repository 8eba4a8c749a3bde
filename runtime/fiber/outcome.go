package fiber

import (
	"errors"
	"fmt"
)

// Outcome is the terminal result of a fiber as observed by a blocking
// caller: a value, an ordinary failure, or an abort.
type Outcome struct {
	Value any
	Err   error
}

// Resolved reports whether the fiber completed with a value.
func (o Outcome) Resolved() bool {
	return o.Err == nil
}

// Aborted reports whether the fiber was terminated by a panic.
func (o Outcome) Aborted() bool {
	return IsAbort(o.Err)
}

// AbortError reports that a fiber was terminated by a recovered panic rather
// than by an ordinary failure value. Reason holds the panic value and Stack
// the stack captured at the recover point.
type AbortError struct {
	Reason any
	Stack  []byte
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("fiber aborted: %v", e.Reason)
}

// Unwrap exposes the panic value when it is an error, so errors.Is and
// errors.As keep working across the abort boundary.
func (e *AbortError) Unwrap() error {
	if err, ok := e.Reason.(error); ok {
		return err
	}
	return nil
}

// IsAbort reports whether err carries an AbortError.
func IsAbort(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}
