// Package oneshot provides a single-use channel for handing one value from
// a producing fiber to a consuming one. Receiving inside a fiber is a
// cooperative suspension point: the parked fiber keeps the executor moving
// by running other queued fibers while it waits.
package oneshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofibers/fibers/runtime/fiber"
)

// ErrClosed is returned by Recv when the sender was closed without a value.
var ErrClosed = errors.New("oneshot: sender closed without a value")

// parkDelay bounds how long a suspended fiber stays parked between attempts
// to steal queued work.
const parkDelay = time.Millisecond

// New creates a connected sender/receiver pair.
func New[T any]() (*Sender[T], *Receiver[T]) {
	ch := make(chan T, 1)
	closed := make(chan struct{})
	return &Sender[T]{ch: ch, closed: closed}, &Receiver[T]{ch: ch, closed: closed}
}

// Sender is the producing half of a oneshot channel. It is safe for
// concurrent use; only the first Send or Close has an effect.
type Sender[T any] struct {
	ch     chan T
	closed chan struct{}
	once   sync.Once
}

// Send delivers v to the receiver, reporting whether v was the value
// delivered. Send never blocks.
func (s *Sender[T]) Send(v T) bool {
	sent := false
	s.once.Do(func() {
		s.ch <- v
		sent = true
	})
	return sent
}

// Close releases the receiver without a value; Recv then returns ErrClosed.
// Close after a successful Send is a no-op.
func (s *Sender[T]) Close() {
	s.once.Do(func() {
		close(s.closed)
	})
}

// Receiver is the consuming half of a oneshot channel.
type Receiver[T any] struct {
	ch     chan T
	closed chan struct{}
}

// Recv blocks until the sender delivers a value, the sender is closed, or
// ctx is done. When called from inside a fiber the fiber shows as Suspended
// for the duration and queued fibers are run on the waiting goroutine so a
// saturated worker pool cannot deadlock on its own hand-offs.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T

	current := fiber.FromContext(ctx)
	if current == nil {
		select {
		case v := <-r.ch:
			return v, nil
		case <-r.closed:
			return zero, ErrClosed
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	current.Suspend()
	defer current.Resume()

	for {
		select {
		case v := <-r.ch:
			return v, nil
		case <-r.closed:
			return zero, ErrClosed
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if current.Yield() {
			continue
		}

		select {
		case v := <-r.ch:
			return v, nil
		case <-r.closed:
			return zero, ErrClosed
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(parkDelay):
		}
	}
}

// TryRecv returns the value when it is already available.
func (r *Receiver[T]) TryRecv() (T, bool) {
	var zero T
	select {
	case v := <-r.ch:
		return v, true
	default:
		return zero, false
	}
}
