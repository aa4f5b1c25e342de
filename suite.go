package olsbench

import (
	"context"
	"fmt"
)

// Benchmark is a labelled body ready to be run by a Suite.
type Benchmark struct {
	Label string

	run  func(opts Options, label string) (Result, error)
	tune func(Options) Options
}

// Case wraps body as a Benchmark measured with Bench.
func Case[T any](label string, body func() T) Benchmark {
	return Benchmark{
		Label: label,
		run: func(opts Options, label string) (Result, error) {
			return Bench(opts, label, body)
		},
	}
}

// SetupCase wraps setup and body as a Benchmark measured with BenchSetup.
func SetupCase[I, O any](label string, setup func() I, body func(I) O) Benchmark {
	return Benchmark{
		Label: label,
		run: func(opts Options, label string) (Result, error) {
			return BenchSetup(opts, label, setup, body)
		},
	}
}

// DropCase wraps body and teardown as a Benchmark measured with BenchDrop.
func DropCase[T any](label string, body func() T, teardown func(T)) Benchmark {
	return Benchmark{
		Label: label,
		run: func(opts Options, label string) (Result, error) {
			return BenchDrop(opts, label, body, teardown)
		},
	}
}

// Tuned returns a copy of b that adjusts the suite's options before running,
// e.g. a shorter budget for a slow body.
func (b Benchmark) Tuned(f func(Options) Options) Benchmark {
	prev := b.tune
	b.tune = func(o Options) Options {
		if prev != nil {
			o = prev(o)
		}
		return f(o)
	}
	return b
}

// Outcome is the result of one benchmark in a suite run. Err is nil on
// success; otherwise Result holds whatever was measured before the failure.
type Outcome struct {
	Result Result
	Err    error
}

// Failed reports whether the benchmark produced no estimate.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Suite runs benchmarks one after another with shared base options.
type Suite struct {
	opts       Options
	benchmarks []Benchmark
}

// NewSuite returns a suite running benchmarks with opts.
func NewSuite(opts Options, benchmarks ...Benchmark) *Suite {
	return &Suite{opts: opts, benchmarks: benchmarks}
}

// Add appends benchmarks to the suite.
func (s *Suite) Add(benchmarks ...Benchmark) {
	s.benchmarks = append(s.benchmarks, benchmarks...)
}

// Benchmarks returns the suite's benchmarks in run order.
func (s *Suite) Benchmarks() []Benchmark {
	out := make([]Benchmark, len(s.benchmarks))
	copy(out, s.benchmarks)
	return out
}

// Filter returns a suite with the same options holding only the benchmarks
// whose label keep accepts.
func (s *Suite) Filter(keep func(label string) bool) *Suite {
	filtered := &Suite{opts: s.opts}
	for _, b := range s.benchmarks {
		if keep(b.Label) {
			filtered.benchmarks = append(filtered.benchmarks, b)
		}
	}
	return filtered
}

// Run executes every benchmark in order and returns one Outcome per
// benchmark. A failing or panicking benchmark is recorded in its Outcome and
// the suite moves on.
//
// ctx is checked between benchmarks only; a running benchmark always finishes
// its budget. The returned error is non-nil only when ctx stopped the suite,
// in which case the outcomes gathered so far are returned with it.
func (s *Suite) Run(ctx context.Context) ([]Outcome, error) {
	logger := s.opts.Logger()
	outcomes := make([]Outcome, 0, len(s.benchmarks))

	for _, b := range s.benchmarks {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("suite stopped before %q: %w", b.Label, err)
		}

		opts := s.opts
		if b.tune != nil {
			opts = b.tune(opts)
		}

		res, err := runIsolated(b, opts)
		if err != nil {
			logger.Warn("benchmark failed", "benchmark", b.Label, "error", err)
		}
		outcomes = append(outcomes, Outcome{Result: res, Err: err})
	}

	return outcomes, nil
}

// runIsolated runs b, converting a panic in its body into ErrBodyPanicked.
func runIsolated(b Benchmark, opts Options) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Label: b.Label, ID: LabelID(b.Label)}
			err = fmt.Errorf("benchmark %q: %w: %v", b.Label, ErrBodyPanicked, p)
		}
	}()

	if b.run == nil {
		return Result{Label: b.Label, ID: LabelID(b.Label)},
			fmt.Errorf("benchmark %q: %w: no body", b.Label, ErrInvalidOptions)
	}
	return b.run(opts, b.Label)
}
