package haptics

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	clickRate     = beep.SampleRate(44100)
	clickFreq     = 880.0
	clickDuration = 25 * time.Millisecond
)

// Audio plays a short sine click through the system speaker. Construction
// fails when no audio device is available; callers are expected to fall back
// to another sink.
type Audio struct{}

// NewAudio initializes the speaker with a small buffer so clicks start with
// negligible latency.
func NewAudio() (*Audio, error) {
	if err := speaker.Init(clickRate, clickRate.N(10*time.Millisecond)); err != nil {
		return nil, err
	}
	return &Audio{}, nil
}

func (*Audio) Pulse() {
	speaker.Play(newClick())
}

// click is a sine burst with a linear fade-out, short enough to read as a
// tick rather than a tone.
type click struct {
	phase    float64
	position int
	total    int
}

func newClick() beep.Streamer {
	return &click{total: clickRate.N(clickDuration)}
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, false
		}

		fade := 1 - float64(c.position)/float64(c.total)
		val := math.Sin(2*math.Pi*c.phase) * fade * 0.5

		samples[i][0] = val
		samples[i][1] = val

		c.phase += clickFreq / float64(clickRate)
		c.phase -= math.Floor(c.phase)
		c.position++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }
