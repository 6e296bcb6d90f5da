package value

import (
	"math"
	"strconv"
)

// FormatNumber renders f the way the source language prints its numbers:
// shortest round-trip decimal form, with non-finite values spelled out
// rather than rejected.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	// Integral values stay in decimal form up to the magnitude where the
	// source language itself switches to exponent notation. 'g' alone flips
	// at 1e6 and would rewrite ids and timestamps.
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
