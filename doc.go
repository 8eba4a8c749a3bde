// Package fibers provides a process-wide executor that lets any part of a
// program spawn and execute fibers – lightweight cooperative tasks – without
// threading an executor reference through every call site.
//
// The executor is constructed lazily and exactly once, on first use, with a
// worker count matching the host parallelism; TryInit fixes the
// configuration beforehand when the defaults do not fit. It then lives for
// the remainder of the process.
//
// Typical usage spawns auxiliary fibers and blocks on a computation that
// combines their results:
//
//	tx0, rx0 := oneshot.New[int]()
//	tx1, rx1 := oneshot.New[int]()
//	fibers.Spawn(func(ctx context.Context) (any, error) {
//		tx0.Send(1)
//		return nil, nil
//	})
//	fibers.Spawn(func(ctx context.Context) (any, error) {
//		tx1.Send(2)
//		return nil, nil
//	})
//	sum, _ := fibers.Execute(func(ctx context.Context) (any, error) {
//		v0, _ := rx0.Recv(ctx)
//		v1, _ := rx1.Recv(ctx)
//		return v0 + v1, nil
//	})
//	// sum == 3
//
// For the underlying pieces see the individual sub-packages:
//
//   - runtime/scheduler – the worker pool and run queue
//   - runtime/fiber     – the fiber state machine and outcomes
//   - sync/oneshot      – one-shot hand-off channels between fibers
package fibers
