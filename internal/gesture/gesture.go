// Package gesture converts host pointer events into the phase-tagged drag
// events the controller consumes, decoupling it from any particular
// recognizer. Deltas are cumulative per gesture: every move reports the
// total vertical translation since the press, so the controller can resolve
// each event against its drag anchor.
package gesture

import "github.com/zigzagg16/dragster/pkg/drag"

// Phase tags a gesture event.
type Phase int

const (
	Begin Phase = iota
	Move
	End
)

func (p Phase) String() string {
	switch p {
	case Begin:
		return "begin"
	case Move:
		return "move"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one gesture sample. DeltaY is the cumulative vertical translation
// since Begin, in the same units as the controller's positions (terminal
// rows for the TUI).
type Event struct {
	Phase  Phase
	DeltaY float64
}

// Tracker turns absolute pointer samples into gesture events. It tracks at
// most one gesture; samples outside a press/release pair are discarded.
type Tracker struct {
	active  bool
	originY int
}

// Press starts a gesture at the given row.
func (t *Tracker) Press(y int) (Event, bool) {
	t.active = true
	t.originY = y
	return Event{Phase: Begin}, true
}

// Motion reports the cumulative translation of an active gesture. Motion
// without a preceding press is discarded.
func (t *Tracker) Motion(y int) (Event, bool) {
	if !t.active {
		return Event{}, false
	}
	return Event{Phase: Move, DeltaY: float64(y - t.originY)}, true
}

// Release ends the active gesture.
func (t *Tracker) Release() (Event, bool) {
	if !t.active {
		return Event{}, false
	}
	t.active = false
	return Event{Phase: End}, true
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Dispatch maps a gesture event onto the matching controller operation.
func Dispatch(c *drag.Controller, ev Event) {
	switch ev.Phase {
	case Begin:
		c.GestureBegin()
	case Move:
		c.GestureMove(ev.DeltaY)
	case End:
		c.GestureEnd()
	}
}
