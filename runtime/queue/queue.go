// Package queue provides the in-memory run queue feeding executor workers.
// Unlike a message bus there is no acknowledgement or redelivery: a consumed
// item is owned by its consumer.
package queue

import (
	"context"
)

// Config for the in-memory queue.
type Config struct {
	// Buffer is the channel capacity before publishes spill to a hand-off
	// goroutine.
	Buffer int
}

// DefaultConfig returns a standard queue configuration.
func DefaultConfig() Config {
	return Config{Buffer: 256}
}

// Queue is a buffered in-memory queue safe for concurrent use.
type Queue[T any] struct {
	items chan *T
}

// New creates a queue.
func New[T any](config Config) *Queue[T] {
	if config.Buffer <= 0 {
		config.Buffer = DefaultConfig().Buffer
	}
	return &Queue[T]{items: make(chan *T, config.Buffer)}
}

// Publish adds an item without ever blocking the caller. When the buffer is
// full the hand-off completes from a separate goroutine; FIFO order is only
// kept while the queue is below capacity, which is acceptable because no
// ordering is guaranteed between independently spawned fibers.
func (q *Queue[T]) Publish(t *T) {
	select {
	case q.items <- t:
	default:
		go func() { q.items <- t }()
	}
}

// Consume blocks until an item is available or ctx is done.
func (q *Queue[T]) Consume(ctx context.Context) (*T, error) {
	select {
	case t := <-q.items:
		return t, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryConsume pops an item without blocking.
func (q *Queue[T]) TryConsume() (*T, bool) {
	select {
	case t := <-q.items:
		return t, true
	default:
		return nil, false
	}
}

// C exposes the receive side of the queue so a caller can select on new work
// together with other channels.
func (q *Queue[T]) C() <-chan *T {
	return q.items
}

// Size returns the number of buffered items.
func (q *Queue[T]) Size() int {
	return len(q.items)
}
