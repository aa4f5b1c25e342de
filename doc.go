// Package olsbench estimates how long a short piece of code takes to run.
//
// # Overview
//
// olsbench runs a closure in batches of growing size, times each batch as a
// whole, and fits a straight line through the (iterations, elapsed) points
// with ordinary least squares. The slope of that line is the cost of one call
// in nanoseconds; R² says how well the line explains the measurements.
//
// The caller never picks an iteration count, never calibrates the timer and
// never writes a warm-up loop: a time budget is the only required input.
//
// # Quick Start
//
//	res, err := olsbench.Bench(olsbench.DefaultOptions(), "sha256/1k", func() [32]byte {
//	    return sha256.Sum256(payload)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %.1f ns/iter (R² = %.4f)\n", res.Label, res.NsPerIter(), res.RSquared())
//
// # Why Regression
//
// Timing one call is useless below the timer's resolution, and timing N calls
// then dividing by N folds a fixed per-batch overhead into every estimate. A
// line fit separates the two:
//
//	elapsed(N) ≈ intercept + slope·N
//
// The intercept absorbs timer reads and loop set-up; the slope is the body.
//
// # Sampling
//
// Batch sizes follow a geometric sequence (factor 1.1 by default, rounded up
// and always growing by at least one): many small batches give the fit
// leverage, a few large ones use most of the budget. The loop stops when the
// budget is spent or a ceiling is hit. A body slower than the whole budget ends
// the run after one batch, with ErrInsufficientData.
//
// Samples are folded into an Accumulator as they arrive and never stored:
// memory use does not grow with the number of batches. Every running sum is a
// KahanSum.
//
// # Variants
//
//   - Bench       - time body() calls
//   - BenchSetup  - build each input with setup() outside the timer, time body(input)
//   - BenchDrop   - time body(), then run teardown(result) outside the timer
//
// # Dead Code
//
// Each result passes through Retain, which the compiler has to treat as a
// use. Build with -tags olsbench_portable to switch to the portable
// package-sink backend; RetainTier reports which one is active.
//
// # Options
//
// Options is an immutable value:
//
//	opts := olsbench.DefaultOptions().
//	    WithTimeBudget(500 * time.Millisecond).
//	    WithWarmup(50 * time.Millisecond)
//
// # Testing
//
// Assert measurement quality in tests:
//
//	func TestEncoder(t *testing.T) {
//	    res, err := olsbench.Bench(opts, "encode", encode)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    olsbench.AssertGoodFit(t, res, olsbench.DefaultAssertionConfig())
//	    olsbench.AssertFasterThan(t, res, 2*time.Microsecond)
//	}
//
// # See Also
//
//   - report/           - text, JSON and YAML rendering of results
//   - config/           - Options from YAML or JSON files
//   - cmd/olsbench/     - CLI running a built-in catalogue of bodies
//   - examples/         - Working code samples
package olsbench
