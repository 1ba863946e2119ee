// Package vmath holds the small numeric helpers shared by the rasterizer,
// physics and renderer.
package vmath

import "math"

const TwoPi = 2 * math.Pi

// NormalizeAngle wraps a into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative can round up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AbsInt returns |v|
func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FloorInt returns floor(v) as int
func FloorInt(v float64) int {
	return int(math.Floor(v))
}

// Reciprocal returns |1/v|, substituting a large sentinel for zero
func Reciprocal(v float64) float64 {
	if v == 0 {
		return InfDistance
	}
	return math.Abs(1 / v)
}

// InfDistance stands in for an infinite DDA step length
const InfDistance = 1e30
