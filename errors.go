package olsbench

import "errors"

var (
	// ErrInsufficientData is returned when fewer than two samples with distinct
	// iteration counts were collected, so the slope of the fit is undefined.
	ErrInsufficientData = errors.New("olsbench: insufficient data for regression")

	// ErrIterationOverflow is returned when the running iteration total would no
	// longer fit in a uint64.
	ErrIterationOverflow = errors.New("olsbench: iteration count overflow")

	// ErrInvalidOptions is returned by Options.Validate and by every Bench* call
	// given options it cannot run with.
	ErrInvalidOptions = errors.New("olsbench: invalid options")

	// ErrClockSkew is returned when the clock reports a negative batch duration.
	ErrClockSkew = errors.New("olsbench: clock went backwards")

	// ErrBodyPanicked is recorded by Suite when a benchmark body panics.
	ErrBodyPanicked = errors.New("olsbench: benchmark body panicked")
)

// ErrClockUnsupported is returned by NewCPUClock on platforms without a
// process CPU-time clock.
var ErrClockUnsupported = errors.New("olsbench: clock not supported on this platform")
