// ABOUTME: Tests for colored noise synthesis
// ABOUTME: Checks buffer shape, coefficients and spectral character per color
package synth

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/neurosonic/neurosonic-go/internal/spectrum"
)

func TestNoiseBufferLength(t *testing.T) {
	for _, c := range Colors() {
		t.Run(c.String(), func(t *testing.T) {
			buf := GenerateNoise(c, 8000, rand.New(rand.NewSource(1)))
			if len(buf) != 16000 {
				t.Errorf("expected 16000 samples, got %d", len(buf))
			}
		})
	}
}

func TestColorCoefficients(t *testing.T) {
	tests := []struct {
		color    Color
		expected Coefficients
	}{
		{Brown, Coefficients{0.02, 1.02, 3.5}},
		{Pink, Coefficients{0.02, 1.011, 4}},
		{Green, Coefficients{0.1, 1.05, 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			coef, ok := ColorCoefficients(tt.color)
			if !ok {
				t.Fatal("expected coefficients")
			}
			if coef != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, coef)
			}
		})
	}

	if _, ok := ColorCoefficients(White); ok {
		t.Error("white noise should have no filter coefficients")
	}
}

func TestWhiteNoiseRange(t *testing.T) {
	buf := GenerateNoise(White, 48000, rand.New(rand.NewSource(7)))
	for i, s := range buf {
		if s < -WhiteScale || s > WhiteScale {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestNoiseFirstSampleRecurrence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	white := rand.New(rand.NewSource(3)).Float64()*2 - 1

	buf := GenerateNoise(Brown, 1000, rng)
	want := float32((0.02 * white) / 1.02 * 3.5)
	if math.Abs(float64(buf[0]-want)) > 1e-7 {
		t.Errorf("expected first brown sample %v, got %v", want, buf[0])
	}
}

func TestNoiseDeterministicWithSeed(t *testing.T) {
	a := GenerateNoise(Pink, 4000, rand.New(rand.NewSource(42)))
	b := GenerateNoise(Pink, 4000, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func lowBand(t *testing.T, c Color) float64 {
	t.Helper()
	buf := GenerateNoise(c, 48000, rand.New(rand.NewSource(11)))
	ratio, err := spectrum.LowBandRatio(buf, 48000, 500)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	return ratio
}

func TestNoiseSpectralCharacter(t *testing.T) {
	white := lowBand(t, White)
	brown := lowBand(t, Brown)
	pink := lowBand(t, Pink)
	green := lowBand(t, Green)

	if white > 0.1 {
		t.Errorf("white noise should be spectrally flat, low band fraction %v", white)
	}
	if brown < white+0.5 {
		t.Errorf("brown low band %v should far exceed white %v", brown, white)
	}
	if math.Abs(green-pink) < 0.1 {
		t.Errorf("green %v and pink %v should differ measurably", green, pink)
	}
	for name, v := range map[string]float64{"pink": pink, "green": green} {
		if v < white {
			t.Errorf("%s low band %v should exceed white %v", name, v, white)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
	}{
		{"white", White},
		{"Pink", Pink},
		{" brown ", Brown},
		{"green-noise", Green},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, c)
			}
		})
	}

	if _, err := ParseColor("purple"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("expected ErrUnknownColor, got %v", err)
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("green")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != "green" {
		t.Errorf("expected green, got %s", text)
	}
	if _, err := Color(99).MarshalText(); err == nil {
		t.Error("expected error for unknown color")
	}
}
