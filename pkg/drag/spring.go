package drag

import "math"

// SpringCurve is a damped-spring easing curve evaluated on normalized time.
// It starts at rest, accelerates toward the target, overshoots slightly and
// settles, like a drawer pulled shut by a spring. Damping controls how fast
// the oscillation dies out, Frequency (> 0) how fast it oscillates.
type SpringCurve struct {
	Damping   float64
	Frequency float64
}

// DefaultSpring returns the curve used for animated open/close transitions:
// a single ~4% overshoot, settled well before the transition ends.
func DefaultSpring() SpringCurve {
	return SpringCurve{Damping: 10, Frequency: 10}
}

// Eval maps normalized time t in [0,1] to eased progress. The curve has zero
// initial velocity and its endpoints are pinned exactly, so a completed
// transition lands on its target.
func (s SpringCurve) Eval(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	decay := math.Exp(-s.Damping * t)
	return 1 - decay*(math.Cos(s.Frequency*t)+(s.Damping/s.Frequency)*math.Sin(s.Frequency*t))
}
