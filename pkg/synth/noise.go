// ABOUTME: Colored noise buffer synthesis
// ABOUTME: One-pole filtered white noise with fixed per-color coefficients
package synth

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrUnknownColor is returned when a noise color name is not recognised
var ErrUnknownColor = errors.New("unknown noise color")

// Color identifies a noise spectrum
type Color int

const (
	White Color = iota
	Pink
	Brown
	Green
)

// WhiteScale is the output scale of unfiltered white noise
const WhiteScale = 0.5

// Coefficients parameterize the one-pole filter:
//
//	state = (state + Injection*white) / Normalization
//	out   = state * Scale
type Coefficients struct {
	Injection     float64
	Normalization float64
	Scale         float64
}

var coefficients = map[Color]Coefficients{
	Brown: {Injection: 0.02, Normalization: 1.02, Scale: 3.5},
	Pink:  {Injection: 0.02, Normalization: 1.011, Scale: 4},
	Green: {Injection: 0.1, Normalization: 1.05, Scale: 2.5},
}

var colorNames = map[Color]string{
	White: "white",
	Pink:  "pink",
	Brown: "brown",
	Green: "green",
}

// Colors returns every supported color
func Colors() []Color {
	return []Color{White, Pink, Brown, Green}
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// ParseColor parses a color name such as "pink"
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "-noise")
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return White, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	if _, ok := colorNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ColorCoefficients returns the filter coefficients for a filtered color.
// White has none and reports false.
func ColorCoefficients(c Color) (Coefficients, bool) {
	coef, ok := coefficients[c]
	return coef, ok
}

// NoiseBufferLength is the number of mono samples in a loop buffer
func NoiseBufferLength(sampleRate int) int {
	return 2 * sampleRate
}

// GenerateNoise synthesizes a two-second mono loop buffer.
// A nil rng is replaced by a time-seeded source.
func GenerateNoise(c Color, sampleRate int, rng *rand.Rand) []float32 {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := make([]float32, NoiseBufferLength(sampleRate))
	coef, filtered := coefficients[c]

	var state float64
	for i := range out {
		white := rng.Float64()*2 - 1
		if !filtered {
			out[i] = float32(white * WhiteScale)
			continue
		}
		state = (state + coef.Injection*white) / coef.Normalization
		out[i] = float32(state * coef.Scale)
	}
	return out
}
