package olsbench

// KahanSum is a running compensated sum.
//
// Each addition records the low-order bits lost to rounding in a separate
// compensation term and feeds them back into the next addition, so the
// accumulated error stays bounded instead of growing with the number of terms.
//
// KahanSum is a value: Add returns the folded state and leaves the receiver
// untouched.
//
//	var s KahanSum
//	for _, v := range values {
//	    s = s.Add(v)
//	}
//	total := s.Sum()
type KahanSum struct {
	sum   float64
	comp  float64 // negative of the rounding error carried into the next Add
	count int64
}

// Add folds v into the sum.
func (k KahanSum) Add(v float64) KahanSum {
	y := v - k.comp
	t := k.sum + y
	return KahanSum{
		sum:   t,
		comp:  (t - k.sum) - y,
		count: k.count + 1,
	}
}

// Sum returns the compensated total.
func (k KahanSum) Sum() float64 {
	return k.sum - k.comp
}

// Count returns the number of values folded so far.
func (k KahanSum) Count() int64 {
	return k.count
}

// Mean returns Sum()/Count(), or 0 for an empty sum.
func (k KahanSum) Mean() float64 {
	if k.count == 0 {
		return 0
	}
	return k.Sum() / float64(k.count)
}

// KahanTotal folds values in order and returns the compensated total.
func KahanTotal(values ...float64) float64 {
	var s KahanSum
	for _, v := range values {
		s = s.Add(v)
	}
	return s.Sum()
}
