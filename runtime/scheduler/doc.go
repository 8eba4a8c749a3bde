// Package scheduler implements the shared executor: a fixed pool of workers
// cooperatively running fibers from a single run queue. Blocked waiters keep
// the pool live by stealing queued fibers onto their own goroutine.
package scheduler
