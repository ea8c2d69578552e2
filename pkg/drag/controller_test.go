package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBound is a plain float holder standing in for a layout offset.
type testBound struct {
	offset float64
}

func (b *testBound) Offset() float64          { return b.offset }
func (b *testBound) SetOffset(offset float64) { b.offset = offset }

// notification records one observer callback in delivery order.
type notification struct {
	kind  string // "position" or "percentage"
	value float64
}

type recordingObserver struct {
	calls []notification
}

func (o *recordingObserver) PositionChanged(position float64) {
	o.calls = append(o.calls, notification{"position", position})
}

func (o *recordingObserver) PercentageChanged(percentage float64) {
	o.calls = append(o.calls, notification{"percentage", percentage})
}

func (o *recordingObserver) last() (position, percentage float64) {
	for _, n := range o.calls {
		if n.kind == "position" {
			position = n.value
		} else {
			percentage = n.value
		}
	}
	return position, percentage
}

type countingTactile struct {
	pulses int
}

func (s *countingTactile) Pulse() { s.pulses++ }

func testConfig() Config {
	return Config{OpenPosition: 0, ClosedPosition: 300, Tolerance: 40}
}

// TestStartValidation tests configuration rejection at Start
func TestStartValidation(t *testing.T) {
	c := New()

	err := c.Start(Config{OpenPosition: 100, ClosedPosition: 100, Tolerance: 40}, &testBound{}, nil)
	assert.ErrorIs(t, err, ErrEqualBounds)

	err = c.Start(Config{OpenPosition: 0, ClosedPosition: 300, Tolerance: 0}, &testBound{}, nil)
	assert.ErrorIs(t, err, ErrTolerance)

	err = c.Start(Config{OpenPosition: 0, ClosedPosition: 300, Tolerance: 40, SnapLowPct: 80, SnapHighPct: 20}, &testBound{}, nil)
	assert.ErrorIs(t, err, ErrSnapThresholds)
}

// TestStartResetsToClosed tests the initial state and notification
func TestStartResetsToClosed(t *testing.T) {
	bound := &testBound{offset: 123}
	obs := &recordingObserver{}
	c := New()

	require.NoError(t, c.Start(testConfig(), bound, obs))

	assert.Equal(t, 300.0, c.Position())
	assert.Equal(t, 0.0, c.Percentage())
	assert.Equal(t, PhaseIdle, c.State())
	assert.Equal(t, 300.0, bound.offset, "bound must be written at start")
	assert.Equal(t, 123.0, c.OriginalOffset(), "initial bound offset must be captured before overwrite")

	// Initial notification reports the closed state, position first.
	require.Len(t, obs.calls, 2)
	assert.Equal(t, notification{"position", 300}, obs.calls[0])
	assert.Equal(t, notification{"percentage", 0}, obs.calls[1])
}

// TestGestureFullTravel tests a drag across the whole travel range
func TestGestureFullTravel(t *testing.T) {
	bound := &testBound{}
	obs := &recordingObserver{}
	tactile := &countingTactile{}
	c := New(WithTactileSink(tactile))
	require.NoError(t, c.Start(testConfig(), bound, obs))

	c.GestureBegin()
	assert.Equal(t, PhaseDragging, c.State())
	assert.Equal(t, 1, tactile.pulses, "gesture begin fires a tactile pulse")

	c.GestureMove(-300)
	assert.Equal(t, 0.0, c.Position())
	assert.Equal(t, 100.0, c.Percentage())
	assert.Equal(t, 0.0, bound.offset)

	c.GestureEnd()
	assert.Equal(t, PhaseIdle, c.State())
	assert.Equal(t, 0.0, c.Position(), "already at the open bound, snap must not move it")
	assert.Equal(t, 100.0, c.Percentage())
}

// TestGestureSnapClosed tests the animated snap below the low threshold
func TestGestureSnapClosed(t *testing.T) {
	bound := &testBound{}
	c := New()
	require.NoError(t, c.Start(testConfig(), bound, nil))

	c.GestureBegin()
	c.GestureMove(-60)
	assert.Equal(t, 240.0, c.Position())
	assert.Equal(t, 20.0, c.Percentage())

	c.GestureEnd()
	assert.Equal(t, PhaseIdle, c.State())
	assert.Equal(t, 300.0, c.Position())
	assert.Equal(t, 0.0, c.Percentage())
}

// TestGestureDeadZone tests that mid-travel releases do not auto-resolve
func TestGestureDeadZone(t *testing.T) {
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	c.GestureBegin()
	c.GestureMove(-150)
	assert.Equal(t, 50.0, c.Percentage())

	c.GestureEnd()
	assert.Equal(t, PhaseIdle, c.State())
	assert.Equal(t, 150.0, c.Position(), "dead zone release must stay put")
}

// TestGestureOvershoot tests rubber-band overshoot and raw percentage
// extrapolation during a drag
func TestGestureOvershoot(t *testing.T) {
	obs := &recordingObserver{}
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, obs))

	c.GestureBegin()
	c.GestureMove(-340)

	assert.Equal(t, -40.0, c.Position(), "Resist(40, 40) == 40 past the open bound")
	assert.Greater(t, c.Percentage(), 100.0)

	_, pct := obs.last()
	assert.Greater(t, pct, 100.0, "observers see raw extrapolated percentage by default")
}

// TestClampObserved tests the observer-side percentage clamp option
func TestClampObserved(t *testing.T) {
	cfg := testConfig()
	cfg.ClampObserved = true
	obs := &recordingObserver{}
	c := New()
	require.NoError(t, c.Start(cfg, &testBound{}, obs))

	c.GestureBegin()
	c.GestureMove(-340)

	assert.Greater(t, c.Percentage(), 100.0, "controller keeps the raw value")
	_, pct := obs.last()
	assert.Equal(t, 100.0, pct, "observer sees the clamped value")
}

// TestGestureMoveIsCumulative tests that deltas resolve against the anchor,
// not the previous position
func TestGestureMoveIsCumulative(t *testing.T) {
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	c.GestureBegin()
	c.GestureMove(-100)
	c.GestureMove(-100)
	assert.Equal(t, 200.0, c.Position(), "repeated identical cumulative deltas must not accumulate")

	c.GestureMove(-150)
	assert.Equal(t, 150.0, c.Position())
}

// TestGestureEventsOutsidePhaseIgnored tests stray events
func TestGestureEventsOutsidePhaseIgnored(t *testing.T) {
	c := New()

	// Before Start everything is inert.
	c.GestureBegin()
	c.GestureMove(-100)
	c.GestureEnd()
	c.Open(false, nil)
	assert.Equal(t, 0.0, c.Position())

	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	c.GestureMove(-100)
	assert.Equal(t, 300.0, c.Position(), "move without begin is discarded")
	c.GestureEnd()
	assert.Equal(t, PhaseIdle, c.State())
}

// TestOpenCloseInstant tests non-animated transitions and their synchronous
// completion callbacks
func TestOpenCloseInstant(t *testing.T) {
	obs := &recordingObserver{}
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, obs))

	completed := false
	c.Open(false, func() { completed = true })
	assert.True(t, completed, "onComplete runs synchronously without animation")
	assert.Equal(t, 0.0, c.Position())
	assert.Equal(t, 100.0, c.Percentage())

	// Idempotent close.
	for i := 0; i < 2; i++ {
		c.Close(false, nil)
		assert.Equal(t, 300.0, c.Position())
		assert.Equal(t, 0.0, c.Percentage())
		assert.Equal(t, PhaseIdle, c.State())
	}
}

// TestOpenAnimated tests an animated transition pumped through the tween
// animator
func TestOpenAnimated(t *testing.T) {
	tween := NewTweenAnimator(100 * time.Millisecond)
	tactile := &countingTactile{}
	bound := &testBound{}
	c := New(WithAnimator(tween), WithTactileSink(tactile))
	require.NoError(t, c.Start(testConfig(), bound, nil))

	completed := false
	c.Open(true, func() { completed = true })
	assert.Equal(t, PhaseSnappingOpen, c.State())
	assert.False(t, completed, "animated open returns before completion")

	for i := 0; i < 20 && tween.Advance(10*time.Millisecond); i++ {
	}

	assert.True(t, completed)
	assert.Equal(t, PhaseIdle, c.State())
	assert.Equal(t, 0.0, c.Position())
	assert.Equal(t, 100.0, c.Percentage())
	assert.Equal(t, 0.0, bound.offset)
	assert.Equal(t, 1, tactile.pulses, "animated completion fires a tactile pulse")
}

// TestGestureInterruptsAnimation tests the in-flight cancellation choice: a
// new gesture cancels the animation and anchors at the interpolated position
func TestGestureInterruptsAnimation(t *testing.T) {
	tween := NewTweenAnimator(100 * time.Millisecond)
	c := New(WithAnimator(tween))
	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	completed := false
	c.Open(true, func() { completed = true })
	tween.Advance(10 * time.Millisecond)
	midway := c.Position()
	require.Less(t, midway, 300.0)
	require.Greater(t, midway, 0.0)

	c.GestureBegin()
	assert.Equal(t, PhaseDragging, c.State())
	assert.False(t, tween.Active(), "in-flight animation is canceled by a new gesture")
	assert.False(t, completed, "superseded transition never completes")

	// The gesture resumes from the interpolated position.
	c.GestureMove(-10)
	assert.Equal(t, midway-10, c.Position())
}

// TestUpdateConfig tests live reconfiguration without a position reset
func TestUpdateConfig(t *testing.T) {
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	c.GestureBegin()
	c.GestureMove(-150)
	c.GestureEnd()
	require.Equal(t, 150.0, c.Position())

	cfg := testConfig()
	cfg.ClosedPosition = 600
	require.NoError(t, c.UpdateConfig(cfg))

	assert.Equal(t, 150.0, c.Position(), "position survives reconfiguration")
	assert.Equal(t, 75.0, c.Percentage(), "percentage recomputed against new bounds")

	assert.ErrorIs(t, c.UpdateConfig(Config{OpenPosition: 1, ClosedPosition: 1, Tolerance: 4}), ErrEqualBounds)
}

// TestReversedBounds tests a configuration where open > closed numerically
func TestReversedBounds(t *testing.T) {
	c := New()
	require.NoError(t, c.Start(Config{OpenPosition: 500, ClosedPosition: 200, Tolerance: 40}, &testBound{}, nil))

	assert.Equal(t, 200.0, c.Position())
	assert.Equal(t, 0.0, c.Percentage())

	c.GestureBegin()
	c.GestureMove(300)
	assert.Equal(t, 500.0, c.Position())
	assert.Equal(t, 100.0, c.Percentage())
}

// TestSilentMode tests that a nil observer is fully supported
func TestSilentMode(t *testing.T) {
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, nil))

	c.GestureBegin()
	c.GestureMove(-340)
	c.GestureEnd()
	c.Open(false, nil)
	c.Close(false, nil)
	assert.Equal(t, 300.0, c.Position())
}

// TestNotificationOrder tests that every move reports position before
// percentage
func TestNotificationOrder(t *testing.T) {
	obs := &recordingObserver{}
	c := New()
	require.NoError(t, c.Start(testConfig(), &testBound{}, obs))

	c.GestureBegin()
	c.GestureMove(-60)
	c.GestureMove(-120)

	require.Len(t, obs.calls, 6, "start + two moves, two callbacks each")
	for i := 0; i < len(obs.calls); i += 2 {
		assert.Equal(t, "position", obs.calls[i].kind)
		assert.Equal(t, "percentage", obs.calls[i+1].kind)
	}
}
