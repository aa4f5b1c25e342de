package olsbench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Result is the outcome of one benchmark run.
type Result struct {
	Label      string        // caller-supplied name, not interpreted
	ID         uint64        // xxHash64 of Label, stable across runs and processes
	Analysis   Analysis      // fitted ns/iter and R²
	Iterations uint64        // total timed calls across all batches
	Batches    int           // number of samples folded into the fit
	Elapsed    time.Duration // run time on the budget clock, warm-up excluded
	Spread     Spread        // per-batch cost distribution
	Ceiling    bool          // stopped by MaxSamples / MaxIterations before the budget ran out
}

// NsPerIter returns the fitted nanoseconds per call.
func (r Result) NsPerIter() float64 {
	return r.Analysis.NsPerIter
}

// RSquared returns the goodness of fit of the estimate.
func (r Result) RSquared() float64 {
	return r.Analysis.RSquared
}

// LabelID returns the identifier Result.ID carries for label.
func LabelID(label string) uint64 {
	return xxhash.Sum64String(label)
}

// batchFunc runs n iterations of a body and returns the time spent in the
// timed part of the batch.
type batchFunc func(n uint64) (time.Duration, error)

// Bench measures body and returns the fitted cost of one call.
//
// body runs in batches of geometrically increasing size. Each batch is timed
// as a whole, and each (iterations, elapsed) pair is folded into a streaming
// least-squares fit. The run ends when the time budget is spent or a ceiling
// from opts is reached. Every value body returns goes through Retain.
//
// On failure the returned Result still carries the label and whatever was
// measured, but no Analysis. Errors wrap ErrInvalidOptions,
// ErrInsufficientData, ErrIterationOverflow or ErrClockSkew.
func Bench[T any](opts Options, label string, body func() T) (Result, error) {
	clock := opts.Clock()

	return run(opts, label, func(n uint64) (time.Duration, error) {
		start := clock.Now()
		for i := uint64(0); i < n; i++ {
			retain(body())
		}
		return clock.Now() - start, nil
	})
}

// BenchSetup measures body with a fresh input from setup on every call. Setup
// time is excluded: each batch builds all of its inputs before the timer
// starts, then times the body calls back to back.
//
// The batch's inputs are held in memory together, so peak memory is the size
// of the largest batch times the size of an input. Unless opts sets its own
// MaxIterations, batches stop growing at DefaultBufferedMaxIterations.
func BenchSetup[I, O any](opts Options, label string, setup func() I, body func(I) O) (Result, error) {
	opts = buffered(opts)
	clock := opts.Clock()
	var inputs []I

	return run(opts, label, func(n uint64) (time.Duration, error) {
		size, err := batchCapacity(n)
		if err != nil {
			return 0, err
		}
		if cap(inputs) < size {
			inputs = make([]I, 0, size)
		}
		inputs = inputs[:0]
		for i := 0; i < size; i++ {
			inputs = append(inputs, setup())
		}

		start := clock.Now()
		for i := range inputs {
			retain(body(inputs[i]))
		}
		elapsed := clock.Now() - start

		clear(inputs)
		return elapsed, nil
	})
}

// BenchDrop measures body and runs teardown on each of its results outside
// the timed region. The results of a batch are kept until the timer stops,
// then torn down in call order and released. teardown may be nil, in which
// case results are only released. Batch sizes are bounded as in BenchSetup.
func BenchDrop[T any](opts Options, label string, body func() T, teardown func(T)) (Result, error) {
	opts = buffered(opts)
	clock := opts.Clock()
	var outputs []T

	return run(opts, label, func(n uint64) (time.Duration, error) {
		size, err := batchCapacity(n)
		if err != nil {
			return 0, err
		}
		if cap(outputs) < size {
			outputs = make([]T, 0, size)
		}
		outputs = outputs[:0]

		start := clock.Now()
		for i := 0; i < size; i++ {
			outputs = append(outputs, retain(body()))
		}
		elapsed := clock.Now() - start

		if teardown != nil {
			for i := range outputs {
				teardown(outputs[i])
			}
		}
		clear(outputs)
		return elapsed, nil
	})
}

// buffered lowers a default iteration ceiling for variants that keep a batch
// in memory. An explicit ceiling is kept as is.
func buffered(opts Options) Options {
	if opts.MaxIterations() == DefaultMaxIterations && opts.StartIterations() <= DefaultBufferedMaxIterations {
		return opts.WithMaxIterations(DefaultBufferedMaxIterations)
	}
	return opts
}

// batchCapacity converts a batch size to a slice length.
func batchCapacity(n uint64) (int, error) {
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: batch of %d iterations does not fit in memory", ErrIterationOverflow, n)
	}
	return int(n), nil
}

// run is the sampling loop shared by every Bench variant.
func run(opts Options, label string, batch batchFunc) (Result, error) {
	result := Result{Label: label, ID: LabelID(label)}

	if err := opts.Validate(); err != nil {
		return result, fmt.Errorf("benchmark %q: %w", label, err)
	}

	logger := opts.Logger().With("benchmark", label)
	debug := logger.Enabled(context.Background(), slog.LevelDebug)

	if opts.Warmup() > 0 {
		if err := warmUp(opts, batch); err != nil {
			return result, fmt.Errorf("benchmark %q: warmup: %w", label, err)
		}
	}

	var (
		acc    Accumulator
		spread = NewSpreadTracker()
		seq    = NewGeometricSequence(opts.StartIterations(), opts.GrowthFactor(), opts.MaxIterations())
		watch  = NewStopwatch(opts.BudgetClock())
	)

	for {
		n, ok := seq.Next()
		if !ok {
			result.Ceiling = true
			break
		}

		elapsed, err := batch(n)
		if err != nil {
			return finish(result, spread, watch), fmt.Errorf("benchmark %q: %w", label, err)
		}
		if elapsed < 0 {
			return finish(result, spread, watch), fmt.Errorf("benchmark %q: %w: batch of %d iterations measured %v",
				label, ErrClockSkew, n, elapsed)
		}
		if result.Iterations > math.MaxUint64-n {
			return finish(result, spread, watch), fmt.Errorf("benchmark %q: %w: %d + %d",
				label, ErrIterationOverflow, result.Iterations, n)
		}

		s := Sample{Iterations: n, Elapsed: elapsed}
		acc.Fold(s)
		spread.Record(s)
		result.Iterations += n
		result.Batches++

		if debug {
			logger.Debug("batch", "iterations", n, "elapsed", elapsed)
		}

		if watch.Elapsed() >= opts.TimeBudget() {
			break
		}
		if result.Batches >= opts.MaxSamples() {
			result.Ceiling = true
			break
		}
	}

	result = finish(result, spread, watch)

	if result.Ceiling {
		logger.Warn("run stopped at ceiling before time budget was spent",
			"batches", result.Batches,
			"iterations", result.Iterations,
			"elapsed", result.Elapsed,
			"budget", opts.TimeBudget())
	}

	analysis, err := acc.Analyze()
	if err != nil {
		return result, fmt.Errorf("benchmark %q: %w", label, err)
	}
	result.Analysis = analysis

	logger.Debug("run finished",
		"ns_per_iter", analysis.NsPerIter,
		"r_squared", analysis.RSquared,
		"batches", result.Batches,
		"elapsed", result.Elapsed)

	return result, nil
}

func finish(r Result, spread *SpreadTracker, watch Stopwatch) Result {
	r.Spread = spread.Snapshot()
	r.Elapsed = watch.Elapsed()
	return r
}

// warmUp runs doubling batches until the warm-up duration has passed or as
// many batches as a full run may take have been spent.
func warmUp(opts Options, batch batchFunc) error {
	watch := NewStopwatch(opts.BudgetClock())
	n := opts.StartIterations()

	for i := 0; i < opts.MaxSamples() && watch.Elapsed() < opts.Warmup(); i++ {
		if _, err := batch(n); err != nil {
			return err
		}
		if n < opts.MaxIterations() {
			n = growIterations(n, 2, opts.MaxIterations())
		}
	}
	return nil
}
