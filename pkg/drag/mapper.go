package drag

import "math"

// MapPosition converts a cumulative gesture delta into a constrained position.
// rawDelta is the total translation since the gesture began, anchor the
// position captured at gesture start. Within [min(bound1,bound2),
// max(bound1,bound2)] the mapping is the identity; past either bound the
// overshoot is fed through Resist so the position decelerates instead of
// stopping dead.
func MapPosition(rawDelta, anchor, tolerance, bound1, bound2 float64) float64 {
	expected := anchor + rawDelta
	lo := math.Min(bound1, bound2)
	hi := math.Max(bound1, bound2)

	switch {
	case expected > hi:
		return hi + resistance(tolerance, expected-hi)
	case expected < lo:
		return lo - resistance(tolerance, lo-expected)
	default:
		return expected
	}
}

// resistance wraps Resist with the defensive clamp the raw formula needs:
// non-finite results (magnitude or tolerance at or below zero) and negative
// results (magnitude far below the tolerance) count as zero added
// displacement, pinning the position to the violated bound.
func resistance(tolerance, magnitude float64) float64 {
	r := Resist(tolerance, magnitude)
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return 0
	}
	return r
}

// PercentageBetween reports how far position sits along the closed→open
// travel as a percentage: 0 at closed, 100 at open. The value is
// extrapolated, not clamped, so rubber-band overshoot is observable as a
// value outside [0, 100].
func PercentageBetween(position, open, closed float64) float64 {
	return (position - closed) / (open - closed) * 100
}
