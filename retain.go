package olsbench

// Retain returns v unchanged while forcing the compiler to treat it as used.
//
// Every value produced by a benchmark body is routed through Retain by the
// driver, so a body whose result is otherwise ignored cannot be removed as dead
// code. Bodies can also call it on intermediate values:
//
//	olsbench.Bench(opts, "parse", func() int {
//	    v, _ := strconv.Atoi(olsbench.Retain(input))
//	    return v
//	})
//
// The backend is chosen at build time; see RetainTier. Its per-call cost is
// included in the estimate.
func Retain[T any](v T) T {
	return retain(v)
}

// RetainTier names the retention backend compiled into this binary:
// "noinline" for the gc toolchain, "sink" for the portable fallback selected by
// the olsbench_portable build tag or by non-gc compilers.
func RetainTier() string {
	return retainTier
}
