// Package drag implements a draggable-panel controller: a single scalar
// position driven by vertical drag gestures, constrained between an open and
// a closed bound with rubber-band resistance past the limits, snap-to-bound
// release behavior, and percentage-of-openness reporting.
package drag

// Phase is the controller's lifecycle state between and during gestures.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSnappingOpen
	PhaseSnappingClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseSnappingOpen:
		return "snapping-open"
	case PhaseSnappingClosed:
		return "snapping-closed"
	default:
		return "unknown"
	}
}

// Bound is the external scalar the controller moves, typically a layout
// offset owned by the host view.
type Bound interface {
	Offset() float64
	SetOffset(float64)
}

// Observer receives controller state changes. Both callbacks fire on every
// position change, position first, then percentage. A nil observer is silent
// mode; nothing is reported.
type Observer interface {
	PositionChanged(position float64)
	PercentageChanged(percentage float64)
}

// TactileSink receives fire-and-forget feedback pulses on gesture start and
// animated-transition completion. Implementations must not block.
type TactileSink interface {
	Pulse()
}

type nopTactile struct{}

func (nopTactile) Pulse() {}

// Controller owns the drawer position and sequences gesture phases. It is
// not safe for concurrent use: all methods, animator callbacks included,
// must run on the single thread that delivers gesture events.
type Controller struct {
	cfg      Config
	bound    Bound
	observer Observer
	tactile  TactileSink
	animator Animator

	started        bool
	phase          Phase
	position       float64
	percentage     float64
	dragAnchor     float64
	originalOffset float64
}

// Option configures optional controller collaborators.
type Option func(*Controller)

// WithAnimator injects the animator used for animated open/close
// transitions. The default completes transitions instantly.
func WithAnimator(a Animator) Option {
	return func(c *Controller) {
		if a != nil {
			c.animator = a
		}
	}
}

// WithTactileSink injects the tactile feedback sink. The default discards
// pulses.
func WithTactileSink(s TactileSink) Option {
	return func(c *Controller) {
		if s != nil {
			c.tactile = s
		}
	}
}

// New returns an idle controller. Start must be called before it reacts to
// gestures.
func New(opts ...Option) *Controller {
	c := &Controller{
		tactile:  nopTactile{},
		animator: InstantAnimator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start installs the configuration and resets the drawer to closed,
// reporting the initial state to the observer as if a close had just
// completed, without animation. The bound's current offset is recorded
// before it is overwritten. observer may be nil.
func (c *Controller) Start(cfg Config, bound Bound, observer Observer) error {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.animator.Cancel()
	c.cfg = cfg
	c.bound = bound
	c.observer = observer
	if bound != nil {
		c.originalOffset = bound.Offset()
	}
	c.started = true
	c.phase = PhaseIdle
	c.setPosition(cfg.ClosedPosition)
	c.percentage = 0
	c.notify()
	return nil
}

// UpdateConfig swaps the configuration without resetting the current
// position, for live reconfiguration. The percentage is recomputed against
// the new bounds.
func (c *Controller) UpdateConfig(cfg Config) error {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	if c.started {
		c.percentage = PercentageBetween(c.position, cfg.OpenPosition, cfg.ClosedPosition)
		c.notify()
	}
	return nil
}

// GestureBegin starts a drag. If an animated open/close is still in flight
// it is canceled and the gesture anchors at the current interpolated
// position. Fires a tactile pulse.
func (c *Controller) GestureBegin() {
	if !c.started {
		return
	}
	if c.phase == PhaseSnappingOpen || c.phase == PhaseSnappingClosed {
		c.animator.Cancel()
	}
	c.phase = PhaseDragging
	c.dragAnchor = c.position
	c.tactile.Pulse()
}

// GestureMove applies the gesture's cumulative vertical translation since
// GestureBegin. Deltas are always resolved against the drag anchor, never
// accumulated incrementally, so event coalescing in the host cannot drift
// the position. Ignored outside a drag.
func (c *Controller) GestureMove(deltaY float64) {
	if c.phase != PhaseDragging {
		return
	}
	c.setPosition(MapPosition(deltaY, c.dragAnchor, c.cfg.Tolerance, c.cfg.OpenPosition, c.cfg.ClosedPosition))
	c.percentage = PercentageBetween(c.position, c.cfg.OpenPosition, c.cfg.ClosedPosition)
	c.notify()
}

// GestureEnd resolves the drag: below the low snap threshold the drawer
// animates closed, above the high one it animates open, and in the dead zone
// between the two it stays where it was released. Ignored outside a drag.
func (c *Controller) GestureEnd() {
	if c.phase != PhaseDragging {
		return
	}
	switch {
	case c.percentage < c.cfg.SnapLowPct:
		c.Close(true, nil)
	case c.percentage > c.cfg.SnapHighPct:
		c.Open(true, nil)
	default:
		c.phase = PhaseIdle
	}
}

// Open moves the drawer to the open position. When animated the transition
// runs through the injected animator, firing a tactile pulse and a final
// notification on completion before invoking onComplete; otherwise it
// applies instantly and onComplete runs synchronously. onComplete may be
// nil.
func (c *Controller) Open(animated bool, onComplete func()) {
	c.transition(animated, PhaseSnappingOpen, c.cfg.OpenPosition, 100, onComplete)
}

// Close moves the drawer to the closed position; the mirror of Open.
func (c *Controller) Close(animated bool, onComplete func()) {
	c.transition(animated, PhaseSnappingClosed, c.cfg.ClosedPosition, 0, onComplete)
}

func (c *Controller) transition(animated bool, phase Phase, target, targetPct float64, onComplete func()) {
	if !c.started {
		return
	}

	if !animated {
		c.animator.Cancel()
		c.phase = PhaseIdle
		c.setPosition(target)
		c.percentage = targetPct
		c.notify()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	c.phase = phase
	c.animator.Animate(c.position, target,
		func(position float64) {
			c.setPosition(position)
			c.percentage = PercentageBetween(position, c.cfg.OpenPosition, c.cfg.ClosedPosition)
			c.notify()
		},
		func() {
			c.phase = PhaseIdle
			c.setPosition(target)
			c.percentage = targetPct
			c.tactile.Pulse()
			c.notify()
			if onComplete != nil {
				onComplete()
			}
		})
}

// Position returns the current drawer position.
func (c *Controller) Position() float64 {
	return c.position
}

// Percentage returns the raw percentage of openness: 0 closed, 100 open,
// outside that range during rubber-band overshoot.
func (c *Controller) Percentage() float64 {
	return c.percentage
}

// State returns the current gesture phase.
func (c *Controller) State() Phase {
	return c.phase
}

// OriginalOffset returns the bound's offset as it was when Start captured
// it.
func (c *Controller) OriginalOffset() float64 {
	return c.originalOffset
}

func (c *Controller) setPosition(position float64) {
	c.position = position
	if c.bound != nil {
		c.bound.SetOffset(position)
	}
}

func (c *Controller) notify() {
	if c.observer == nil {
		return
	}
	c.observer.PositionChanged(c.position)
	pct := c.percentage
	if c.cfg.ClampObserved {
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
	}
	c.observer.PercentageChanged(pct)
}
