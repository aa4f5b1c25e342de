package olsbench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpreadTracker_Uniform verifies identical batches are reported stable.
func TestSpreadTracker_Uniform(t *testing.T) {
	tracker := NewSpreadTracker()
	for n := uint64(1); n <= 100; n++ {
		tracker.Record(Sample{Iterations: n, Elapsed: time.Duration(n) * 25 * time.Nanosecond})
	}

	s := tracker.Snapshot()
	t.Logf("spread: %+v", s)

	assert.Equal(t, int64(100), s.Batches)
	assert.InEpsilon(t, 25.0, s.P50, 0.001)
	assert.InEpsilon(t, 25.0, s.P99, 0.001)
	assert.InDelta(t, 1.0, s.TailDivergenceRatio, 0.01)
	assert.True(t, s.IsStable)
	assert.False(t, s.IsHeavyTailed)
}

// TestSpreadTracker_HeavyTail verifies a few disturbed batches show up in the
// tail ratio.
func TestSpreadTracker_HeavyTail(t *testing.T) {
	tracker := NewSpreadTracker()
	for i := 0; i < 98; i++ {
		tracker.Record(Sample{Iterations: 100, Elapsed: 1000 * time.Nanosecond})
	}
	for i := 0; i < 2; i++ {
		tracker.Record(Sample{Iterations: 100, Elapsed: 50_000 * time.Nanosecond})
	}

	s := tracker.Snapshot()
	t.Logf("spread: %+v", s)

	assert.InEpsilon(t, 10.0, s.P50, 0.001)
	assert.InEpsilon(t, 500.0, s.P99, 0.001)
	assert.InEpsilon(t, 50.0, tracker.TailDivergenceRatio(), 0.01)
	assert.False(t, s.IsStable)
	assert.True(t, s.IsHeavyTailed)
	assert.InEpsilon(t, 10.0, s.Min, 0.001)
	assert.InEpsilon(t, 500.0, s.Max, 0.001)
}

func TestSpreadTracker_SubNanosecond(t *testing.T) {
	tracker := NewSpreadTracker()
	tracker.Record(Sample{Iterations: 1000, Elapsed: 300 * time.Nanosecond})

	assert.InEpsilon(t, 0.3, tracker.P50(), 0.001)
}

func TestSpreadTracker_Empty(t *testing.T) {
	tracker := NewSpreadTracker()
	tracker.Record(Sample{Iterations: 0, Elapsed: time.Second})

	s := tracker.Snapshot()
	require.Zero(t, s.Batches)
	assert.Equal(t, 1.0, s.TailDivergenceRatio)
	assert.True(t, s.IsStable)
	assert.Equal(t, 1.0, tracker.TailDivergenceRatio())
}

func TestSpreadTracker_ZeroElapsed(t *testing.T) {
	tracker := NewSpreadTracker()
	tracker.Record(Sample{Iterations: 10, Elapsed: 0})

	s := tracker.Snapshot()
	assert.Equal(t, int64(1), s.Batches)
	assert.InDelta(t, 0.001, s.P50, 1e-6)
}
