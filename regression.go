package olsbench

import (
	"fmt"
	"time"
)

// Sample is one timed batch: Iterations consecutive calls of the body took
// Elapsed in total.
type Sample struct {
	Iterations uint64
	Elapsed    time.Duration
}

// Analysis is the fitted line elapsed ≈ Intercept + NsPerIter·iterations.
type Analysis struct {
	NsPerIter float64 // slope: nanoseconds per call
	Intercept float64 // fixed per-batch overhead in nanoseconds
	RSquared  float64 // R²: goodness of fit (1.0 = perfect)
	Samples   int     // batches the fit was computed from
}

// String returns a short human-readable summary of the fit.
func (a Analysis) String() string {
	return fmt.Sprintf("Analysis{ns/iter: %.3f, intercept: %.1f, R²: %.4f, samples: %d}",
		a.NsPerIter, a.Intercept, a.RSquared, a.Samples)
}

// Accumulator fits elapsed time against iteration count with ordinary least
// squares, folding one Sample at a time.
//
// Only the running sums Σx, Σy, Σx², Σxy, Σy² and the count are kept, each as a
// compensated KahanSum, so memory stays constant however many samples are
// folded. Analyze derives the slope, intercept and R² from those sums, which
// is algebraically the same as fitting the full sample set from scratch.
//
// The zero value is an empty accumulator ready for use. It is not safe for
// concurrent use.
type Accumulator struct {
	x, y, xx, xy, yy KahanSum

	n        int
	firstX   float64
	distinct bool // at least two different iteration counts seen
}

// Fold adds one sample to the running sums.
func (a *Accumulator) Fold(s Sample) {
	x := float64(s.Iterations)
	y := float64(s.Elapsed.Nanoseconds())

	if a.n == 0 {
		a.firstX = x
	} else if x != a.firstX {
		a.distinct = true
	}
	a.n++

	a.x = a.x.Add(x)
	a.y = a.y.Add(y)
	a.xx = a.xx.Add(x * x)
	a.xy = a.xy.Add(x * y)
	a.yy = a.yy.Add(y * y)
}

// Len returns the number of samples folded so far.
func (a *Accumulator) Len() int {
	return a.n
}

// Analyze computes the least-squares fit over every folded sample.
//
// It returns ErrInsufficientData when the slope is undefined: fewer than two
// samples, or every sample with the same iteration count.
//
// R² is reported as computed. Floating-point residue can push it marginally
// outside [0, 1] for near-degenerate input; that is left as is. When every
// sample has the same elapsed time there is no variance to explain and R² is 1.
func (a *Accumulator) Analyze() (Analysis, error) {
	if a.n < 2 {
		return Analysis{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, a.n)
	}
	if !a.distinct {
		return Analysis{}, fmt.Errorf("%w: all %d samples share iteration count %.0f",
			ErrInsufficientData, a.n, a.firstX)
	}

	n := float64(a.n)
	sumX, sumY := a.x.Sum(), a.y.Sum()

	// Centred second moments:
	//   Sxx = Σx² - (Σx)²/n,  Sxy = Σxy - ΣxΣy/n,  Syy = Σy² - (Σy)²/n
	sxx := a.xx.Sum() - sumX*sumX/n
	sxy := a.xy.Sum() - sumX*sumY/n
	syy := a.yy.Sum() - sumY*sumY/n

	if sxx <= 0 {
		return Analysis{}, fmt.Errorf("%w: zero variance in iteration counts", ErrInsufficientData)
	}

	slope := sxy / sxx
	intercept := sumY/n - slope*sumX/n

	rSquared := 1.0
	if syy != 0 {
		ssRes := syy - slope*sxy
		rSquared = 1 - ssRes/syy
	}

	return Analysis{
		NsPerIter: slope,
		Intercept: intercept,
		RSquared:  rSquared,
		Samples:   a.n,
	}, nil
}
