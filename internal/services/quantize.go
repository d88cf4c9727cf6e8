package services

import "math"

// Extents this close below a whole number of steps are treated as that
// number, so a trailing sliver left by binary rounding gets no cell of its own.
const snapEpsilon = 1e-9

// cellIndex returns the index k of the grid line at or below p, where line k
// lies at base + k*step. The floored quotient is corrected against the line
// positions themselves so that base + k*step <= p < base + (k+1)*step holds
// exactly in float64. Decimal grid lines such as 114.160 are rarely exact in
// binary and the raw quotient can land one cell short or long. p is expected
// to be >= base.
func cellIndex(base, p, step float64) int {
	k := math.Floor((p - base) / step)
	if base+(k+1)*step <= p {
		k++
	} else if k > 0 && base+k*step > p {
		k--
	}
	return int(k)
}

// cellCount returns how many steps are needed to cover extent, ignoring a
// trailing sliver thinner than snapEpsilon steps.
func cellCount(extent, step float64) int {
	if !(extent > 0) {
		return 0
	}
	q := extent / step
	n := math.Ceil(q)
	if n-q > 1-snapEpsilon {
		n--
	}
	return int(n)
}
