package fibers_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofibers/fibers"
	"github.com/gofibers/fibers/runtime/fiber"
	"github.com/gofibers/fibers/sync/oneshot"
)

// The global executor is constructed at most once per process, so the
// explicit-initialization path is exercised first, before anything else in
// this file touches the package.
func TestGlobalExecutor(t *testing.T) {
	require.False(t, fibers.Initialized())

	require.NoError(t, fibers.TryInit(&fibers.Config{Workers: 2}))
	require.True(t, fibers.Initialized())

	t.Run("try init rejects invalid config", func(t *testing.T) {
		assert.Error(t, fibers.TryInit(&fibers.Config{Workers: -1}))
	})

	t.Run("second try init fails", func(t *testing.T) {
		err := fibers.TryInit(fibers.DefaultConfig())
		assert.ErrorIs(t, err, fibers.ErrAlreadyInitialized)
	})

	t.Run("all callers observe the same executor", func(t *testing.T) {
		const callers = 100
		executors := make([]any, callers)
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				executors[i] = fibers.Handle().Executor()
			}(i)
		}
		wg.Wait()
		for i := 1; i < callers; i++ {
			assert.Same(t, executors[0], executors[i])
		}
	})

	t.Run("execute returns resolved value", func(t *testing.T) {
		value, err := fibers.Execute(func(ctx context.Context) (any, error) {
			return 1 + 2, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, value)
	})

	t.Run("spawned fibers join via oneshot", func(t *testing.T) {
		tx0, rx0 := oneshot.New[int]()
		tx1, rx1 := oneshot.New[int]()

		fibers.Spawn(func(ctx context.Context) (any, error) {
			tx0.Send(1)
			return nil, nil
		})
		fibers.Spawn(func(ctx context.Context) (any, error) {
			tx1.Send(2)
			return nil, nil
		})

		sum, err := fibers.ExecuteTyped(func(ctx context.Context) (int, error) {
			v0, err := rx0.Recv(ctx)
			if err != nil {
				return 0, err
			}
			v1, err := rx1.Recv(ctx)
			if err != nil {
				return 0, err
			}
			return v0 + v1, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, sum)
	})

	t.Run("execute surfaces failure values", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := fibers.Execute(func(ctx context.Context) (any, error) {
			return nil, boom
		})
		assert.Same(t, boom, err)
		assert.False(t, fiber.IsAbort(err))
	})

	t.Run("execute surfaces aborts distinctly", func(t *testing.T) {
		_, err := fibers.Execute(func(ctx context.Context) (any, error) {
			panic("defect")
		})
		var abort *fiber.AbortError
		require.True(t, errors.As(err, &abort))
		assert.Equal(t, "defect", abort.Reason)
	})

	t.Run("execute is reentrant", func(t *testing.T) {
		value, err := fibers.Execute(func(ctx context.Context) (any, error) {
			inner, err := fibers.Execute(func(ctx context.Context) (any, error) {
				return 2, nil
			})
			if err != nil {
				return nil, err
			}
			return 1 + inner.(int), nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, value)
	})

	t.Run("spawn returns before the task completes", func(t *testing.T) {
		release, gate := oneshot.New[struct{}]()
		finished := make(chan struct{})

		start := time.Now()
		fibers.Spawn(func(ctx context.Context) (any, error) {
			defer close(finished)
			return gate.Recv(ctx)
		})
		assert.Less(t, time.Since(start), time.Second)

		release.Send(struct{}{})
		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("spawned task did not finish after release")
		}
	})

	t.Run("handle spawns like the facade", func(t *testing.T) {
		tx, rx := oneshot.New[int]()
		h := fibers.Handle()
		h.Spawn(func(ctx context.Context) (any, error) {
			tx.Send(9)
			return nil, nil
		})
		v, err := rx.Recv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 9, v)
	})

	t.Run("typed execute propagates failures", func(t *testing.T) {
		boom := errors.New("typed boom")
		v, err := fibers.ExecuteTyped(func(ctx context.Context) (string, error) {
			return "ignored", boom
		})
		assert.Same(t, boom, err)
		assert.Empty(t, v)
	})
}
