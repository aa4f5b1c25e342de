package olsbench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUClock_CountsWorkNotSleep(t *testing.T) {
	clock, err := NewCPUClock()
	require.NoError(t, err)

	w := NewStopwatch(clock)
	time.Sleep(20 * time.Millisecond)
	slept := w.Elapsed()

	w.Reset()
	x := 1.0
	deadline := time.Now().Add(20 * time.Millisecond)
	for time.Now().Before(deadline) {
		x = Retain(x*1.0000001 + 1)
	}
	spun := w.Elapsed()

	t.Logf("cpu time while sleeping: %v, while spinning: %v", slept, spun)
	assert.Greater(t, spun, slept)
	assert.Greater(t, spun, 5*time.Millisecond)
}

func TestCPUClock_BudgetStaysOnWallClock(t *testing.T) {
	clock, err := NewCPUClock()
	require.NoError(t, err)

	opts := DefaultOptions().WithClock(clock).WithTimeBudget(20 * time.Millisecond)

	start := time.Now()
	res, err := Bench(opts, "sleep/200us", func() struct{} {
		time.Sleep(200 * time.Microsecond)
		return struct{}{}
	})
	wall := time.Since(start)
	require.NoError(t, err)

	t.Logf("%d batches, %d iterations in %v", res.Batches, res.Iterations, wall)
	assert.False(t, res.Ceiling)
	assert.Less(t, wall, 500*time.Millisecond)
}
