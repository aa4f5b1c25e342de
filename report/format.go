package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatNumber renders n with precision fractional digits and sep between
// groups of three integral digits.
//
//	FormatNumber(1234567.891, 2, ',') == "1,234,567.89"
func FormatNumber(n float64, precision int, sep rune) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	// Round first so a carry out of the fraction reaches the integral part.
	s := strconv.FormatFloat(math.Abs(n), 'f', precision, 64)
	integral, fractional, _ := strings.Cut(s, ".")

	var b strings.Builder
	if n < 0 && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}

	lead := len(integral) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(integral[:lead])
	for i := lead; i < len(integral); i += 3 {
		b.WriteRune(sep)
		b.WriteString(integral[i : i+3])
	}

	if fractional != "" {
		b.WriteByte('.')
		b.WriteString(fractional)
	}
	return b.String()
}

// FormatSeconds renders d as seconds with one decimal, e.g. "5.0s".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatNsPerIter renders a per-call cost, keeping three decimals for
// sub-nanosecond bodies.
func FormatNsPerIter(ns float64) string {
	precision := 2
	if math.Abs(ns) < 1 {
		precision = 3
	}
	return FormatNumber(ns, precision, ',') + " ns/iter"
}
