package drag

import "errors"

// Default snap thresholds: a release below SnapLowPct animates closed, above
// SnapHighPct animates open, and anything between is a dead zone where the
// drawer stays put.
const (
	DefaultSnapLowPct  = 25.0
	DefaultSnapHighPct = 75.0
)

var (
	// ErrEqualBounds is returned by Start when the open and closed
	// positions coincide, which would make the percentage undefined.
	ErrEqualBounds = errors.New("drag: open and closed positions must differ")

	// ErrTolerance is returned by Start when the rubber-band tolerance is
	// not strictly positive.
	ErrTolerance = errors.New("drag: tolerance must be > 0")

	// ErrSnapThresholds is returned by Start when the snap thresholds are
	// inverted.
	ErrSnapThresholds = errors.New("drag: snap low threshold must not exceed snap high threshold")
)

// Config is the immutable per-controller configuration. OpenPosition and
// ClosedPosition may be in either numeric order; travel direction is always
// closed→open.
type Config struct {
	// OpenPosition is the position value at which the drawer is fully open.
	OpenPosition float64

	// ClosedPosition is the position value at which the drawer is fully
	// closed. Must differ from OpenPosition.
	ClosedPosition float64

	// Tolerance controls how quickly rubber-band resistance grows once a
	// drag exceeds the travel bounds. Must be > 0.
	Tolerance float64

	// SnapLowPct and SnapHighPct bound the release dead zone. Zero values
	// mean the defaults (25 and 75).
	SnapLowPct  float64
	SnapHighPct float64

	// ClampObserved clamps the percentage reported to the observer into
	// [0, 100]. The controller's own percentage stays raw either way so
	// snap decisions and overshoot remain exact.
	ClampObserved bool
}

// withDefaults fills in zero-valued snap thresholds.
func (c Config) withDefaults() Config {
	if c.SnapLowPct == 0 && c.SnapHighPct == 0 {
		c.SnapLowPct = DefaultSnapLowPct
		c.SnapHighPct = DefaultSnapHighPct
	}
	return c
}

// Validate checks the configuration invariants enforced at Start.
func (c Config) Validate() error {
	if c.OpenPosition == c.ClosedPosition {
		return ErrEqualBounds
	}
	if c.Tolerance <= 0 {
		return ErrTolerance
	}
	if c.SnapLowPct > c.SnapHighPct {
		return ErrSnapThresholds
	}
	return nil
}
