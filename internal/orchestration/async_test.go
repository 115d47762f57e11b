package orchestration

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGather_Empty(t *testing.T) {
	results := Gather(context.Background(), []Task[int]{}, 0)
	assert.Empty(t, results)
}

func TestGather_PreservesTaskOrder(t *testing.T) {
	tasks := []Task[string]{
		{Name: "slow", Func: func(context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "slow-value", nil
		}},
		{Name: "fast", Func: func(context.Context) (string, error) {
			return "fast-value", nil
		}},
	}

	results := Gather(context.Background(), tasks, 0)

	require.Len(t, results, 2)
	assert.Equal(t, "slow", results[0].Name)
	assert.Equal(t, "slow-value", results[0].Value)
	assert.Equal(t, "fast", results[1].Name)
	assert.Equal(t, "fast-value", results[1].Value)
}

func TestGather_FailureDoesNotCancelSiblings(t *testing.T) {
	var completed atomic.Int32
	boom := errors.New("probe failed")

	tasks := []Task[int]{
		{Name: "a", Func: func(context.Context) (int, error) {
			return 0, boom
		}},
		{Name: "b", Func: func(context.Context) (int, error) {
			time.Sleep(20 * time.Millisecond)
			completed.Add(1)
			return 7, nil
		}},
		{Name: "c", Func: func(context.Context) (int, error) {
			completed.Add(1)
			return 9, nil
		}},
	}

	results := Gather(context.Background(), tasks, 0)

	require.Len(t, results, 3)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 7, results[1].Value)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 9, results[2].Value)
	assert.Equal(t, int32(2), completed.Load())
}

func TestGather_LimitBoundsConcurrency(t *testing.T) {
	var running atomic.Int32
	var peak atomic.Int32

	var tasks []Task[struct{}]
	for n := 0; n < 8; n++ {
		tasks = append(tasks, Task[struct{}]{Name: "t", Func: func(context.Context) (struct{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		}})
	}

	Gather(context.Background(), tasks, 2)

	assert.LessOrEqual(t, peak.Load(), int32(2))
}
