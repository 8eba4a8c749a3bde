package once

import (
	"sync"
	"sync/atomic"
)

// Cell holds a single value of type T for the lifetime of the process.
// Its lifecycle is Uninitialized -> Initializing -> Ready; there is no
// teardown state. Once Ready, reads are lock-free.
type Cell[T any] struct {
	mu  sync.Mutex
	ref atomic.Pointer[T]
}

// Get returns the held value, constructing it with init when the cell is
// still empty. Exactly one init call happens no matter how many goroutines
// race on first access; losing racers block until the winner publishes and
// then observe the same pointer. init must not return nil.
func (c *Cell[T]) Get(init func() *T) *T {
	if v := c.ref.Load(); v != nil {
		return v
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v := c.ref.Load(); v != nil {
		return v
	}
	v := init()
	if v == nil {
		panic("once: init returned nil")
	}
	c.ref.Store(v)
	return v
}

// TryInit seeds the cell with the value produced by init. When the cell is
// already Ready it reports false without invoking init and the held value is
// left untouched.
func (c *Cell[T]) TryInit(init func() *T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ref.Load() != nil {
		return false
	}
	v := init()
	if v == nil {
		panic("once: init returned nil")
	}
	c.ref.Store(v)
	return true
}

// Ready reports whether the cell holds a value.
func (c *Cell[T]) Ready() bool {
	return c.ref.Load() != nil
}
