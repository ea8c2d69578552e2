package haptics

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBellWritesBel tests the bell sink output
func TestBellWritesBel(t *testing.T) {
	var buf bytes.Buffer
	b := Bell{W: &buf}

	b.Pulse()
	b.Pulse()

	assert.Equal(t, "\a\a", buf.String())
}

// TestBellNilWriter tests that a bell without a writer is inert
func TestBellNilWriter(t *testing.T) {
	assert.NotPanics(t, func() { Bell{}.Pulse() })
}

// TestNop tests the no-op sink
func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Pulse() })
}

// TestClickStreamerShape tests the generated click without a speaker: it
// must be finite, stereo-identical, bounded and fade to silence.
func TestClickStreamerShape(t *testing.T) {
	s := newClick()

	var all [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			break
		}
	}

	assert.Equal(t, clickRate.N(clickDuration), len(all))
	for _, sample := range all {
		assert.Equal(t, sample[0], sample[1])
		assert.LessOrEqual(t, math.Abs(sample[0]), 0.5)
	}

	// The tail of the fade-out should be nearly silent.
	tail := all[len(all)-10:]
	for _, sample := range tail {
		assert.Less(t, math.Abs(sample[0]), 0.01)
	}
}
