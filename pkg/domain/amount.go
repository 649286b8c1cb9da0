package domain

import "math"

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsPositiveAmount reports whether x can be moved as money: finite and
// above zero. NaN fails every comparison, so `x <= 0` alone lets it through.
func IsPositiveAmount(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
