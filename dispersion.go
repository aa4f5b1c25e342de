package olsbench

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range for per-batch cost, in picoseconds per iteration: 1ps to one
// hour, 3 significant figures. Picoseconds keep sub-nanosecond bodies
// resolvable.
const (
	spreadMinPs   = 1
	spreadMaxPs   = int64(3_600_000_000_000_000)
	spreadSigFigs = 3
)

// Tail divergence thresholds (P99/P50).
const (
	stableTailRatio = 3.0
	heavyTailRatio  = 10.0
)

// SpreadTracker records the cost per iteration of every batch, elapsed/N, in
// an HDR histogram. Memory is fixed by the histogram's range and precision, not
// by the number of batches.
//
// The regression already averages batches against each other; the spread is a
// second opinion on how noisy the run was. Clean runs have P99/P50 close to 1.
// Large ratios mean some batches were hit by preemption, GC or frequency
// scaling.
//
// Batch cost includes the fixed per-batch overhead divided by N, so the
// smallest batches sit in the upper percentiles even on a quiet machine.
//
// SpreadTracker is not safe for concurrent use.
type SpreadTracker struct {
	hist *hdrhistogram.Histogram
}

// NewSpreadTracker returns an empty tracker.
func NewSpreadTracker() *SpreadTracker {
	return &SpreadTracker{
		hist: hdrhistogram.New(spreadMinPs, spreadMaxPs, spreadSigFigs),
	}
}

// Record adds one batch. Batches with zero iterations are ignored.
func (t *SpreadTracker) Record(s Sample) {
	if s.Iterations == 0 {
		return
	}

	ps := math.Round(float64(s.Elapsed.Nanoseconds()) * 1000 / float64(s.Iterations))

	// Clamp to valid range
	v := int64(spreadMinPs)
	switch {
	case ps >= float64(spreadMaxPs):
		v = spreadMaxPs
	case ps > spreadMinPs:
		v = int64(ps)
	}

	_ = t.hist.RecordValue(v)
}

// P50 returns the median batch cost in nanoseconds per iteration.
func (t *SpreadTracker) P50() float64 {
	return t.quantileNs(50)
}

// P99 returns the 99th percentile batch cost in nanoseconds per iteration.
func (t *SpreadTracker) P99() float64 {
	return t.quantileNs(99)
}

// TailDivergenceRatio returns P99/P50, or 1 before anything was recorded.
func (t *SpreadTracker) TailDivergenceRatio() float64 {
	p50 := t.P50()
	if p50 == 0 {
		return 1.0
	}
	return t.P99() / p50
}

func (t *SpreadTracker) quantileNs(q float64) float64 {
	if t.hist.TotalCount() == 0 {
		return 0
	}
	return float64(t.hist.ValueAtQuantile(q)) / 1000
}

// Spread is a snapshot of a SpreadTracker.
type Spread struct {
	Batches             int64
	Min                 float64 // ns/iter
	P50                 float64 // ns/iter
	P99                 float64 // ns/iter
	Max                 float64 // ns/iter
	TailDivergenceRatio float64 // P99/P50
	IsStable            bool    // ratio < 3: batches agree with each other
	IsHeavyTailed       bool    // ratio > 10: a few batches were much slower
}

// Snapshot returns the current statistics.
func (t *SpreadTracker) Snapshot() Spread {
	if t.hist.TotalCount() == 0 {
		return Spread{TailDivergenceRatio: 1.0, IsStable: true}
	}

	ratio := t.TailDivergenceRatio()
	return Spread{
		Batches:             t.hist.TotalCount(),
		Min:                 float64(t.hist.Min()) / 1000,
		P50:                 t.P50(),
		P99:                 t.P99(),
		Max:                 float64(t.hist.Max()) / 1000,
		TailDivergenceRatio: ratio,
		IsStable:            ratio < stableTailRatio,
		IsHeavyTailed:       ratio > heavyTailRatio,
	}
}
