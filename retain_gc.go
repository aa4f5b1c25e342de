//go:build gc && !olsbench_portable

package olsbench

const retainTier = "noinline"

// retain is opaque to the gc compiler: it is never inlined and gc performs no
// interprocedural purity analysis, so the argument must be materialised and
// the call kept. No allocation.
//
//go:noinline
func retain[T any](v T) T {
	return v
}
