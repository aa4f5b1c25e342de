package olsbench

import "math"

// GeometricSequence yields strictly increasing batch sizes that grow by a
// constant factor: start, ceil(start·g), ceil(ceil(start·g)·g), ...
//
// Each step grows by at least one so small starts still advance, and growth
// is computed in floating point and compared against the ceiling before it is
// converted back to an integer, so it can never wrap. The ceiling itself is
// yielded once, after which the sequence is exhausted.
type GeometricSequence struct {
	next   uint64
	factor float64
	limit  uint64
	done   bool
}

// NewGeometricSequence returns a sequence starting at start, growing by
// factor, and ending after limit has been yielded. factor must be > 1.
func NewGeometricSequence(start uint64, factor float64, limit uint64) GeometricSequence {
	return GeometricSequence{next: start, factor: factor, limit: limit}
}

// Next returns the next batch size, or false once the ceiling has been yielded.
func (g *GeometricSequence) Next() (uint64, bool) {
	if g.done {
		return 0, false
	}

	cur := g.next
	if cur >= g.limit {
		g.done = true
		return g.limit, true
	}

	g.next = growIterations(cur, g.factor, g.limit)
	return cur, true
}

// Exhausted reports whether the ceiling has already been yielded.
func (g *GeometricSequence) Exhausted() bool {
	return g.done
}

// growIterations returns max(n+1, ceil(n·factor)) clamped to limit. n < limit.
func growIterations(n uint64, factor float64, limit uint64) uint64 {
	f := math.Ceil(float64(n) * factor)
	if f >= float64(limit) {
		return limit
	}

	next := uint64(f)
	if next <= n {
		next = n + 1
	}
	return next
}
