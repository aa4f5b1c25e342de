package olsbench

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Defaults used by DefaultOptions.
//
// A growth factor of 1.1 takes ~200 batches to get from 1 to 10⁸ iterations,
// which gives the regression many well-spread points at small batch sizes
// while large batches still dominate the time budget. The ceilings only stop
// runaway loops (a body cheaper than the timer, or a clock that never
// advances); a normal 5s run of a 1ns body ends near 5·10⁸ iterations.
const (
	DefaultTimeBudget      = 5 * time.Second
	DefaultGrowthFactor    = 1.1
	DefaultStartIterations = 1
	DefaultMaxIterations   = 1 << 32
	DefaultMaxSamples      = 2000

	// DefaultBufferedMaxIterations replaces DefaultMaxIterations for BenchSetup
	// and BenchDrop, which hold a whole batch of inputs or outputs in memory.
	DefaultBufferedMaxIterations = 1 << 20
)

// Options controls a benchmark run.
//
// Options is an immutable value: every With* method returns an updated copy
// and leaves the receiver unchanged, so one base configuration can be shared by
// benchmarks running on different goroutines.
//
//	base := olsbench.DefaultOptions().WithTimeBudget(500 * time.Millisecond)
//	quick := base.WithMaxSamples(50) // base is unchanged
type Options struct {
	timeBudget      time.Duration
	warmup          time.Duration
	startIterations uint64
	growthFactor    float64
	maxIterations   uint64
	maxSamples      int
	clock           Clock
	budgetClock     Clock
	logger          *slog.Logger
}

// DefaultOptions returns a 5 second budget, no warm-up, batches starting at one
// iteration and growing by 10%, timed and budgeted on the wall clock, with
// logging discarded.
func DefaultOptions() Options {
	return Options{
		timeBudget:      DefaultTimeBudget,
		warmup:          0,
		startIterations: DefaultStartIterations,
		growthFactor:    DefaultGrowthFactor,
		maxIterations:   DefaultMaxIterations,
		maxSamples:      DefaultMaxSamples,
		clock:           WallClock{},
		budgetClock:     WallClock{},
		logger:          discardLogger,
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithTimeBudget returns a copy with the total time budget set to d.
func (o Options) WithTimeBudget(d time.Duration) Options {
	o.timeBudget = d
	return o
}

// WithWarmup returns a copy that runs the body untimed for d before sampling.
func (o Options) WithWarmup(d time.Duration) Options {
	o.warmup = d
	return o
}

// WithStartIterations returns a copy whose first batch runs n iterations.
func (o Options) WithStartIterations(n uint64) Options {
	o.startIterations = n
	return o
}

// WithGrowthFactor returns a copy whose batch sizes grow by factor g (> 1).
func (o Options) WithGrowthFactor(g float64) Options {
	o.growthFactor = g
	return o
}

// WithMaxIterations returns a copy whose batch size never exceeds n.
func (o Options) WithMaxIterations(n uint64) Options {
	o.maxIterations = n
	return o
}

// WithMaxSamples returns a copy that stops after n batches.
func (o Options) WithMaxSamples(n int) Options {
	o.maxSamples = n
	return o
}

// WithClock returns a copy that times batches on c. nil restores WallClock.
func (o Options) WithClock(c Clock) Options {
	if c == nil {
		c = WallClock{}
	}
	o.clock = c
	return o
}

// WithBudgetClock returns a copy whose time budget and warm-up are measured on
// c. nil restores WallClock. Batches are still timed on Clock, so a CPU clock
// for the fit does not stretch the budget of a body that blocks.
func (o Options) WithBudgetClock(c Clock) Options {
	if c == nil {
		c = WallClock{}
	}
	o.budgetClock = c
	return o
}

// WithLogger returns a copy that logs to l. nil discards logging.
func (o Options) WithLogger(l *slog.Logger) Options {
	if l == nil {
		l = discardLogger
	}
	o.logger = l
	return o
}

// TimeBudget returns the total time budget of a run.
func (o Options) TimeBudget() time.Duration { return o.timeBudget }

// Warmup returns the untimed warm-up duration.
func (o Options) Warmup() time.Duration { return o.warmup }

// StartIterations returns the size of the first batch.
func (o Options) StartIterations() uint64 { return o.startIterations }

// GrowthFactor returns the batch growth factor.
func (o Options) GrowthFactor() float64 { return o.growthFactor }

// MaxIterations returns the batch size ceiling.
func (o Options) MaxIterations() uint64 { return o.maxIterations }

// MaxSamples returns the batch count ceiling.
func (o Options) MaxSamples() int { return o.maxSamples }

// Clock returns the clock batches are timed on.
func (o Options) Clock() Clock {
	if o.clock == nil {
		return WallClock{}
	}
	return o.clock
}

// BudgetClock returns the clock the time budget and warm-up run on.
func (o Options) BudgetClock() Clock {
	if o.budgetClock == nil {
		return WallClock{}
	}
	return o.budgetClock
}

// Logger returns the logger runs report to.
func (o Options) Logger() *slog.Logger {
	if o.logger == nil {
		return discardLogger
	}
	return o.logger
}

// Validate reports every setting a run cannot proceed with, joined into one
// error wrapping ErrInvalidOptions. A zero Options value is invalid; start
// from DefaultOptions.
func (o Options) Validate() error {
	var errs []error

	if o.timeBudget <= 0 {
		errs = append(errs, fmt.Errorf("time budget must be positive, got %v", o.timeBudget))
	}
	if o.warmup < 0 {
		errs = append(errs, fmt.Errorf("warmup must not be negative, got %v", o.warmup))
	}
	if o.startIterations == 0 {
		errs = append(errs, errors.New("start iterations must be at least 1"))
	}
	if !(o.growthFactor > 1) {
		errs = append(errs, fmt.Errorf("growth factor must be greater than 1, got %v", o.growthFactor))
	}
	if o.maxIterations < o.startIterations {
		errs = append(errs, fmt.Errorf("max iterations %d below start iterations %d",
			o.maxIterations, o.startIterations))
	}
	if o.maxSamples < 2 {
		errs = append(errs, fmt.Errorf("max samples must be at least 2, got %d", o.maxSamples))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
}
