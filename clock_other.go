//go:build !linux

package olsbench

// NewCPUClock returns ErrClockUnsupported outside Linux.
func NewCPUClock() (Clock, error) {
	return nil, ErrClockUnsupported
}
