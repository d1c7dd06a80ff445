// ABOUTME: Tests for audio types
// ABOUTME: Tests clamping and sample conversion functions
package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"inside", 0.4, 0.4},
		{"below", -0.5, 0},
		{"above", 1.7, 1},
		{"lower edge", 0, 0},
		{"upper edge", 1, 1},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.input, 0, 1)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"full positive", 1, math.MaxInt16},
		{"full negative", -1, -math.MaxInt16},
		{"clipped positive", 2.5, math.MaxInt16},
		{"clipped negative", -3, -math.MaxInt16},
		{"half", 0.5, 16384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTripInt16(t *testing.T) {
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32767}

	for _, original := range samples {
		f := SampleFromInt16(original)
		result := SampleToInt16(f)
		if result != original {
			t.Errorf("round-trip failed: %d -> %f -> %d", original, f, result)
		}
	}
}

func TestPutFloat32LE(t *testing.T) {
	samples := []float32{0, 0.25, -1}
	buf := make([]byte, len(samples)*4)
	PutFloat32LE(buf, samples)

	for i, want := range samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != want {
			t.Errorf("sample %d: expected %f, got %f", i, want, got)
		}
	}
}

func TestFormatFrames(t *testing.T) {
	f := DefaultFormat()
	if f.SampleRate != DefaultSampleRate {
		t.Errorf("expected sample rate %d, got %d", DefaultSampleRate, f.SampleRate)
	}
	if got := f.Frames(1024); got != 512 {
		t.Errorf("expected 512 frames, got %d", got)
	}
	if got := (Format{}).Frames(10); got != 0 {
		t.Errorf("expected 0 frames for empty format, got %d", got)
	}
}
