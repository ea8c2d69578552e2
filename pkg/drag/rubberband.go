package drag

import "math"

// Resist computes the rubber-band displacement for a drag of magnitude past a
// travel limit. It is the identity at the limit (Resist(l, l) == l) and grows
// logarithmically beyond it, which is what gives an over-dragged panel its
// "stretchy" deceleration instead of a hard stop.
//
// Defined for limit > 0 and magnitude > 0. For magnitudes well below the
// limit the raw formula goes negative; callers that need a sane displacement
// for arbitrary inputs should go through MapPosition, which guards this.
func Resist(limit, magnitude float64) float64 {
	return limit * (1 + math.Log10(magnitude/limit))
}
