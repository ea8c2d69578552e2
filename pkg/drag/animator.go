package drag

import "time"

// Animator performs the animated part of an open/close transition. step and
// done must be invoked on the same thread that delivers gesture events; done
// fires exactly once per transition unless the transition is superseded or
// canceled first, in which case it never fires.
type Animator interface {
	Animate(from, to float64, step func(position float64), done func())
	Cancel()
}

// InstantAnimator completes every transition synchronously. It is the
// default when no animator is injected.
type InstantAnimator struct{}

// Animate jumps straight to the target.
func (InstantAnimator) Animate(from, to float64, step func(float64), done func()) {
	step(to)
	done()
}

// Cancel is a no-op; instant transitions are never in flight.
func (InstantAnimator) Cancel() {}

// TweenAnimator interpolates a transition over a fixed duration using a
// spring curve. It does not own a clock: the host event loop calls Advance
// with elapsed frame time, so every step lands on the host's delivery thread
// and ordering against gesture events is preserved.
type TweenAnimator struct {
	Duration time.Duration
	Curve    SpringCurve

	active  bool
	from    float64
	to      float64
	elapsed time.Duration
	step    func(float64)
	done    func()
}

// NewTweenAnimator returns an animator with the given transition duration
// and the default spring curve. Non-positive durations fall back to 250ms.
func NewTweenAnimator(duration time.Duration) *TweenAnimator {
	if duration <= 0 {
		duration = 250 * time.Millisecond
	}
	return &TweenAnimator{Duration: duration, Curve: DefaultSpring()}
}

// Animate begins a transition, superseding any in-flight one. The superseded
// transition's done callback never fires.
func (a *TweenAnimator) Animate(from, to float64, step func(float64), done func()) {
	a.active = true
	a.from = from
	a.to = to
	a.elapsed = 0
	a.step = step
	a.done = done
}

// Cancel drops the in-flight transition without firing its done callback.
func (a *TweenAnimator) Cancel() {
	a.active = false
	a.step = nil
	a.done = nil
}

// Advance moves the in-flight transition forward by one frame of elapsed
// time and returns whether the host should keep pumping frames.
func (a *TweenAnimator) Advance(dt time.Duration) bool {
	if !a.active {
		return false
	}

	a.elapsed += dt
	t := float64(a.elapsed) / float64(a.Duration)
	if t >= 1 {
		// Final step lands exactly on the target before done fires.
		step, done := a.step, a.done
		a.Cancel()
		step(a.to)
		done()
		return false
	}

	a.step(a.from + (a.to-a.from)*a.Curve.Eval(t))
	return true
}

// Active reports whether a transition is currently in flight.
func (a *TweenAnimator) Active() bool {
	return a.active
}
