package olsbench

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuite_ContinuesPastFailures(t *testing.T) {
	var logs bytes.Buffer
	clock := &fakeClock{}
	opts := fakeOptions(clock, time.Millisecond).
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	suite := NewSuite(opts,
		Case("ok", func() int {
			clock.Advance(50 * time.Nanosecond)
			return 0
		}),
		Case("too-slow", func() int {
			clock.Advance(time.Second)
			return 0
		}),
		Case("panics", func() int {
			panic("boom")
		}),
		Case("ok-again", func() int {
			clock.Advance(75 * time.Nanosecond)
			return 0
		}),
	)

	outcomes, err := suite.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.False(t, outcomes[0].Failed())
	assert.InDelta(t, 50.0, outcomes[0].Result.NsPerIter(), 1e-6)

	assert.True(t, outcomes[1].Failed())
	assert.ErrorIs(t, outcomes[1].Err, ErrInsufficientData)

	assert.True(t, outcomes[2].Failed())
	assert.ErrorIs(t, outcomes[2].Err, ErrBodyPanicked)
	assert.Contains(t, outcomes[2].Err.Error(), "boom")
	assert.Equal(t, "panics", outcomes[2].Result.Label)

	assert.False(t, outcomes[3].Failed())
	assert.InDelta(t, 75.0, outcomes[3].Result.NsPerIter(), 1e-6)

	assert.Equal(t, 2, strings.Count(logs.String(), "benchmark failed"))
}

func TestSuite_CancelBetweenBenchmarks(t *testing.T) {
	clock := &fakeClock{}
	ctx, cancel := context.WithCancel(context.Background())

	var ran []string
	suite := NewSuite(fakeOptions(clock, time.Millisecond),
		Case("first", func() int {
			if len(ran) == 0 {
				ran = append(ran, "first")
			}
			clock.Advance(time.Microsecond)
			return 0
		}),
		Case("second", func() int {
			ran = append(ran, "second")
			return 0
		}),
	)

	// Cancel while the first benchmark is being prepared: it still runs to the
	// end of its budget.
	suite.benchmarks[0] = suite.benchmarks[0].Tuned(func(o Options) Options {
		cancel()
		return o
	})

	outcomes, err := suite.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Failed())
	assert.Equal(t, []string{"first"}, ran)
}

func TestSuite_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite := NewSuite(DefaultOptions(), Case("never", func() int { return 0 }))
	outcomes, err := suite.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestSuite_FilterAndAdd(t *testing.T) {
	suite := NewSuite(DefaultOptions(),
		Case("hash/small", func() int { return 0 }),
		Case("hash/large", func() int { return 0 }),
	)
	suite.Add(Case("encode/json", func() int { return 0 }))

	labels := func(s *Suite) []string {
		var out []string
		for _, b := range s.Benchmarks() {
			out = append(out, b.Label)
		}
		return out
	}

	assert.Equal(t, []string{"hash/small", "hash/large", "encode/json"}, labels(suite))

	hashes := suite.Filter(func(label string) bool { return strings.HasPrefix(label, "hash/") })
	assert.Equal(t, []string{"hash/small", "hash/large"}, labels(hashes))
	assert.Len(t, suite.Benchmarks(), 3, "Filter must not modify the original suite")
}

func TestSuite_TunedComposes(t *testing.T) {
	clock := &fakeClock{}
	var seen Options

	b := Case("tuned", func() int {
		clock.Advance(time.Microsecond)
		return 0
	}).
		Tuned(func(o Options) Options { return o.WithTimeBudget(2 * time.Millisecond) }).
		Tuned(func(o Options) Options {
			seen = o.WithMaxSamples(500)
			return seen
		})

	outcomes, err := NewSuite(DefaultOptions().WithClock(clock).WithBudgetClock(clock), b).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)

	assert.Equal(t, 2*time.Millisecond, seen.TimeBudget())
	assert.Equal(t, 500, seen.MaxSamples())
	assert.GreaterOrEqual(t, outcomes[0].Result.Elapsed, 2*time.Millisecond)
}

func TestSuite_SetupAndDropCases(t *testing.T) {
	clock := &fakeClock{}
	var dropped int

	suite := NewSuite(fakeOptions(clock, 5*time.Millisecond),
		SetupCase("setup",
			func() int {
				clock.Advance(10 * time.Microsecond)
				return 3
			},
			func(v int) int {
				clock.Advance(time.Duration(v) * 100 * time.Nanosecond)
				return v
			}),
		DropCase("drop",
			func() []byte {
				clock.Advance(200 * time.Nanosecond)
				return make([]byte, 8)
			},
			func([]byte) { dropped++ }),
	)

	outcomes, err := suite.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	require.NoError(t, outcomes[0].Err)
	assert.InDelta(t, 300.0, outcomes[0].Result.NsPerIter(), 1e-6)

	require.NoError(t, outcomes[1].Err)
	assert.InDelta(t, 200.0, outcomes[1].Result.NsPerIter(), 1e-6)
	assert.Equal(t, outcomes[1].Result.Iterations, uint64(dropped))
}

func TestSuite_ZeroBenchmark(t *testing.T) {
	outcomes, err := NewSuite(DefaultOptions(), Benchmark{Label: "empty"}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, ErrInvalidOptions)
}
