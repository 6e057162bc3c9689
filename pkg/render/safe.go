// Package render provides the bounds-safe drawing primitives, smoothing
// filters, and frame-loop plumbing shared by every visualization in field-viz.
package render

import "math"

// TwoPi is the full-circle angle used by SafeAngle normalization.
const TwoPi = 2 * math.Pi

// SafeRadius converts an arbitrary requested radius into one that is safe to
// hand to a circle or arc drawing call: never negative, never larger than
// half of maxDimension, never below 1. NaN collapses to the floor of 1.
//
// If maxDimension is zero or negative there is no meaningful upper bound and
// only the floor of 1 is enforced; callers sizing against an uninitialized
// surface are expected to pick a sane fallback dimension themselves.
func SafeRadius(requested, maxDimension float64) float64 {
	if math.IsNaN(requested) {
		requested = 0
	}
	r := math.Abs(requested)
	if maxDimension > 0 {
		if half := maxDimension / 2; r > half {
			r = half
		}
	}
	if r < 1 {
		return 1
	}
	return r
}

// SafeCoordinate clamps a coordinate into [0, axisSize]. NaN collapses to 0.
func SafeCoordinate(requested, axisSize float64) float64 {
	if math.IsNaN(requested) || requested < 0 {
		return 0
	}
	if axisSize >= 0 && requested > axisSize {
		return axisSize
	}
	return requested
}

// SafeAngle normalizes an angle into [0, 2π). NaN and infinities return 0,
// so accumulated rotations fed by untrusted metric data can never poison a
// trig call.
func SafeAngle(requested float64) float64 {
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		return 0
	}
	a := math.Mod(requested, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}
