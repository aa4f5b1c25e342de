//go:build !gc || olsbench_portable

package olsbench

import "sync/atomic"

const retainTier = "sink"

// sink publishes the last retained value to a package-level location the
// compiler has to assume is read elsewhere. Boxing costs one small allocation
// per call.
var sink atomic.Pointer[any]

func retain[T any](v T) T {
	boxed := any(v)
	sink.Store(&boxed)
	return v
}
