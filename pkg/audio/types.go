// ABOUTME: Audio type definitions
// ABOUTME: Defines the render format and float sample conversions
package audio

import "math"

const (
	// DefaultSampleRate is used when no rate is configured
	DefaultSampleRate = 48000

	// Stereo is the only channel layout the mix bus renders
	Stereo = 2
)

// Format describes the rendered stream format.
// Samples are always float32, interleaved, nominally within [-1, 1].
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat returns 48kHz stereo
func DefaultFormat() Format {
	return Format{SampleRate: DefaultSampleRate, Channels: Stereo}
}

// Frames returns how many whole frames fit in n interleaved samples
func (f Format) Frames(n int) int {
	if f.Channels <= 0 {
		return 0
	}
	return n / f.Channels
}

// Renderer produces interleaved float32 samples on demand.
// Render must fill dst completely; silence is written as zeros.
type Renderer interface {
	Render(dst []float32)
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SampleToInt16 converts a float sample to int16 with clipping
func SampleToInt16(sample float32) int16 {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	return int16(math.Round(float64(sample) * math.MaxInt16))
}

// SampleFromInt16 converts an int16 sample to float
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / math.MaxInt16
}

// PutFloat32LE writes samples as little-endian IEEE-754 into dst.
// dst must hold at least 4*len(samples) bytes.
func PutFloat32LE(dst []byte, samples []float32) {
	for i, s := range samples {
		bits := math.Float32bits(s)
		dst[i*4] = byte(bits)
		dst[i*4+1] = byte(bits >> 8)
		dst[i*4+2] = byte(bits >> 16)
		dst[i*4+3] = byte(bits >> 24)
	}
}
