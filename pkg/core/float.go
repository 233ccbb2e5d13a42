package core

import "math"

// Epsilon is the tolerance used for every zero and sign test on floats
const Epsilon = 1e-5

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// ApproxEqual reports whether a and b differ by less than Epsilon
func ApproxEqual(a, b float64) bool {
	return IsZero(a - b)
}
