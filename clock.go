package olsbench

import "time"

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary fixed origin; only differences between readings are meaningful.
type Clock interface {
	Now() time.Duration
}

// clockOrigin anchors WallClock readings. time.Since uses the monotonic
// reading carried by time.Now, so wall-clock adjustments do not leak in.
var clockOrigin = time.Now()

// WallClock measures monotonic wall-clock time. It is the default clock.
type WallClock struct{}

// Now implements Clock.
func (WallClock) Now() time.Duration {
	return time.Since(clockOrigin)
}

// Stopwatch measures time elapsed on a Clock since it was created or last
// reset.
type Stopwatch struct {
	clock Clock
	start time.Duration
}

// NewStopwatch starts a stopwatch on clock. A nil clock means WallClock.
func NewStopwatch(clock Clock) Stopwatch {
	if clock == nil {
		clock = WallClock{}
	}
	return Stopwatch{clock: clock, start: clock.Now()}
}

// Elapsed returns the time since the stopwatch was started or reset.
func (s Stopwatch) Elapsed() time.Duration {
	return s.clock.Now() - s.start
}

// Reset restarts the stopwatch.
func (s *Stopwatch) Reset() {
	s.start = s.clock.Now()
}
