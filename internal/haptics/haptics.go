// Package haptics provides tactile-feedback sinks for the drag controller.
// Feedback is best effort: a sink that cannot be set up degrades to a no-op
// rather than failing the host.
package haptics

import "io"

// Nop discards pulses. It is the fallback for every unavailable backend.
type Nop struct{}

func (Nop) Pulse() {}

// Bell emits the terminal bell, the closest thing a terminal has to a
// haptic tick.
type Bell struct {
	W io.Writer
}

func (b Bell) Pulse() {
	if b.W == nil {
		return
	}
	b.W.Write([]byte{'\a'})
}
