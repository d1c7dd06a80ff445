// ABOUTME: Sine oscillator and stereo panner law
// ABOUTME: Phase-accumulator sine source used by tone and binaural layers
package synth

import (
	"math"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// Oscillator is a phase-accumulating sine source
type Oscillator struct {
	freq       float64
	sampleRate float64
	phase      float64
}

// NewOscillator creates a sine oscillator starting at phase zero
func NewOscillator(freq float64, sampleRate int) *Oscillator {
	return &Oscillator{
		freq:       freq,
		sampleRate: float64(sampleRate),
	}
}

// Frequency returns the oscillator frequency in Hz
func (o *Oscillator) Frequency() float64 {
	return o.freq
}

// Next returns the current sample and advances one frame
func (o *Oscillator) Next() float64 {
	s := math.Sin(2 * math.Pi * o.phase)
	_, o.phase = math.Modf(o.phase + o.freq/o.sampleRate)
	return s
}

// PanGains returns the equal-power channel gains for a mono source at pan.
// pan is clamped to [-1, 1]; the extremes are exact hard pans.
func PanGains(pan float64) (left, right float64) {
	pan = audio.Clamp(pan, -1, 1)
	switch pan {
	case -1:
		return 1, 0
	case 1:
		return 0, 1
	}
	x := (pan + 1) / 2
	return math.Cos(x * math.Pi / 2), math.Sin(x * math.Pi / 2)
}
