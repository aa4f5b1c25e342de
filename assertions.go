package olsbench

import (
	"math"
	"testing"
	"time"
)

// AssertionConfig contains thresholds for measurement quality.
type AssertionConfig struct {
	// Minimum R² for the estimate to be trusted
	MinRSquared float64

	// Maximum per-batch P99/P50 (0 disables the check)
	MaxTailRatio float64
}

// DefaultAssertionConfig returns conservative thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		MinRSquared:  0.95, // 95% of variance explained by the line
		MaxTailRatio: 0,
	}
}

// AssertGoodFit verifies the estimate in r is trustworthy.
//
// A low R² means batch times did not grow linearly with batch size: the
// timer was too coarse, the machine was noisy, or the body's cost depends on
// how many times it already ran (caches, allocation pressure).
func AssertGoodFit(t testing.TB, r Result, cfg AssertionConfig) {
	t.Helper()

	if r.Batches == 0 {
		t.Fatalf("%s: no batches recorded", r.Label)
	}

	if math.IsNaN(r.RSquared()) || r.RSquared() < cfg.MinRSquared {
		t.Errorf("%s: poor fit: R² = %.4f (min: %.4f)\n"+
			"Batch time does not grow linearly with iterations. Check for measurement noise.",
			r.Label, r.RSquared(), cfg.MinRSquared)
	}

	if cfg.MaxTailRatio > 0 && r.Spread.TailDivergenceRatio > cfg.MaxTailRatio {
		t.Errorf("%s: batch spread too wide: P99/P50 = %.2f (max: %.2f)\n"+
			"  P50: %.3f ns/iter, P99: %.3f ns/iter",
			r.Label, r.Spread.TailDivergenceRatio, cfg.MaxTailRatio, r.Spread.P50, r.Spread.P99)
	}

	t.Logf("✓ %s: R² = %.4f over %d batches", r.Label, r.RSquared(), r.Batches)
}

// AssertFasterThan verifies one call costs less than limit.
func AssertFasterThan(t testing.TB, r Result, limit time.Duration) {
	t.Helper()

	if r.NsPerIter() >= float64(limit.Nanoseconds()) {
		t.Errorf("%s: too slow: %.3f ns/iter (limit: %d ns/iter)",
			r.Label, r.NsPerIter(), limit.Nanoseconds())
		return
	}

	t.Logf("✓ %s: %.3f ns/iter < %v", r.Label, r.NsPerIter(), limit)
}

// AssertNear verifies one call costs want within a relative tolerance, e.g.
// 0.1 for ±10%.
func AssertNear(t testing.TB, r Result, want time.Duration, tolerance float64) {
	t.Helper()

	w := float64(want.Nanoseconds())
	if w == 0 {
		t.Fatalf("%s: AssertNear needs a non-zero target", r.Label)
	}

	rel := math.Abs(r.NsPerIter()-w) / w
	if rel > tolerance {
		t.Errorf("%s: estimate %.1f ns/iter is %.1f%% away from %v (tolerance: %.1f%%)",
			r.Label, r.NsPerIter(), rel*100, want, tolerance*100)
		return
	}

	t.Logf("✓ %s: %.1f ns/iter within %.1f%% of %v", r.Label, r.NsPerIter(), tolerance*100, want)
}

// PrintAnalysis outputs the full measurement to the test log.
func PrintAnalysis(t testing.TB, r Result) {
	t.Helper()

	t.Logf("\n=== %s ===", r.Label)
	t.Logf("Estimate:")
	t.Logf("  ns/iter     = %.3f", r.Analysis.NsPerIter)
	t.Logf("  intercept   = %.1f ns (per-batch overhead)", r.Analysis.Intercept)
	t.Logf("  R²          = %.4f (goodness of fit)", r.Analysis.RSquared)

	t.Logf("\nRun:")
	t.Logf("  batches     = %d", r.Batches)
	t.Logf("  iterations  = %d", r.Iterations)
	t.Logf("  elapsed     = %v", r.Elapsed)
	if r.Ceiling {
		t.Logf("  ⚠ stopped at ceiling before the time budget was spent")
	}

	t.Logf("\nBatch spread (ns/iter):")
	t.Logf("  min=%.3f p50=%.3f p99=%.3f max=%.3f", r.Spread.Min, r.Spread.P50, r.Spread.P99, r.Spread.Max)
	t.Logf("  P99/P50     = %.2f", r.Spread.TailDivergenceRatio)

	t.Logf("\nInterpretation:")
	switch {
	case r.Analysis.RSquared > 0.99:
		t.Logf("  ✓ Excellent fit (R² > 0.99)")
	case r.Analysis.RSquared > 0.95:
		t.Logf("  ✓ Good fit (R² > 0.95)")
	case r.Analysis.RSquared > 0.90:
		t.Logf("  ⚠ Fair fit (R² > 0.90)")
	default:
		t.Logf("  ✗ Poor fit (R² ≤ 0.90) - check for measurement noise")
	}

	switch {
	case r.Spread.IsHeavyTailed:
		t.Logf("  ✗ Heavy tail (P99/P50 > 10) - some batches were disturbed")
	case !r.Spread.IsStable:
		t.Logf("  ⚠ Uneven batches (P99/P50 ≥ 3)")
	default:
		t.Logf("  ✓ Batches agree (P99/P50 < 3)")
	}
}
