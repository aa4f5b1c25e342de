//go:build linux

package olsbench

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// cpuClock reads CLOCK_PROCESS_CPUTIME_ID: CPU time consumed by every thread
// of the process, GC workers included. Time spent blocked or sleeping does not
// advance it.
type cpuClock struct{}

// NewCPUClock returns a Clock that measures process CPU time instead of wall
// time. Useful for CPU-bound bodies on a noisy machine; useless for bodies
// that sleep or wait on I/O.
func NewCPUClock() (Clock, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return nil, fmt.Errorf("%w: clock_gettime(CLOCK_PROCESS_CPUTIME_ID): %v", ErrClockUnsupported, err)
	}
	return cpuClock{}, nil
}

// Now implements Clock. The clock id was probed by NewCPUClock, so the call
// cannot fail with EINVAL here.
func (cpuClock) Now() time.Duration {
	var ts unix.Timespec
	_ = unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts)
	return time.Duration(ts.Nano())
}
