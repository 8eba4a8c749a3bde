package once

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellGetConstructsExactlyOnce(t *testing.T) {
	const racers = 200

	var cell Cell[int]
	var constructions atomic.Int64

	results := make([]*int, racers)
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i] = cell.Get(func() *int {
				constructions.Add(1)
				v := 42
				return &v
			})
		}(i)
	}
	start.Done()
	done.Wait()

	assert.EqualValues(t, 1, constructions.Load())
	assert.True(t, cell.Ready())
	for i := 1; i < racers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 42, *results[0])
}

func TestCellTryInit(t *testing.T) {
	var cell Cell[string]
	assert.False(t, cell.Ready())

	v := "configured"
	ok := cell.TryInit(func() *string { return &v })
	assert.True(t, ok)
	assert.True(t, cell.Ready())

	// A second explicit initialization must not touch the held value.
	ok = cell.TryInit(func() *string {
		t.Fatal("init must not be invoked once the cell is ready")
		return nil
	})
	assert.False(t, ok)
	assert.Same(t, &v, cell.Get(func() *string { return nil }))
}

func TestCellTryInitAfterImplicitGet(t *testing.T) {
	var cell Cell[int]
	first := cell.Get(func() *int { v := 1; return &v })
	ok := cell.TryInit(func() *int { v := 2; return &v })
	assert.False(t, ok)
	assert.Same(t, first, cell.Get(nil))
}
