package util

import (
	"math"
	"strconv"
)

// Clamp01 bounds x into [0,1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// NonNegative clamps x to [0, +Inf). There is no upper bound; NaN maps to 0.
func NonNegative(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Finite reports whether x is neither NaN nor ±Inf.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FmtFloat formats x with the shortest representation that round-trips.
func FmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
