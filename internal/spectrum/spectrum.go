// ABOUTME: FFT based band energy analysis
// ABOUTME: Measures how signal energy distributes across frequency bands
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// MaxWindow caps the analysed length in samples
const MaxWindow = 1 << 16

// ErrTooShort is returned when fewer than two samples are supplied
var ErrTooShort = errors.New("signal too short for analysis")

// Band is one frequency range of a Report
type Band struct {
	LowHz    float64
	HighHz   float64
	Energy   float64
	Fraction float64
}

// Report is the energy distribution of a signal
type Report struct {
	SampleRate int
	Window     int
	Total      float64
	Bands      []Band
}

// DefaultEdges splits the audible range into bands useful for comparing noise colors
func DefaultEdges(sampleRate int) []float64 {
	return []float64{0, 60, 250, 500, 2000, 4000, 8000, float64(sampleRate) / 2}
}

// PowerSpectrum returns per-bin power for bins 1..n/2 and the bin width in Hz.
// The signal is truncated to the largest power of two up to MaxWindow and
// Hann windowed.
func PowerSpectrum(samples []float32, sampleRate int) ([]float64, float64, error) {
	n := window(len(samples))
	if n < 2 {
		return nil, 0, ErrTooShort
	}

	f, err := fft.New(n)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create fft: %w", err)
	}

	buf := make([]complex128, n)
	for i := 0; i < n; i++ {
		hann := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex(float64(samples[i])*hann, 0)
	}
	buf = f.Transform(buf)

	power := make([]float64, n/2)
	for k := 1; k <= n/2; k++ {
		a := cmplx.Abs(buf[k])
		power[k-1] = a * a
	}
	return power, float64(sampleRate) / float64(n), nil
}

// Analyze reports the energy of samples between consecutive edges
func Analyze(samples []float32, sampleRate int, edges []float64) (Report, error) {
	if len(edges) < 2 {
		return Report{}, fmt.Errorf("need at least two band edges, got %d", len(edges))
	}

	power, binHz, err := PowerSpectrum(samples, sampleRate)
	if err != nil {
		return Report{}, err
	}

	report := Report{SampleRate: sampleRate, Window: len(power) * 2}
	report.Bands = make([]Band, len(edges)-1)
	for i := range report.Bands {
		report.Bands[i] = Band{LowHz: edges[i], HighHz: edges[i+1]}
	}

	for i, p := range power {
		freq := float64(i+1) * binHz
		report.Total += p
		for b := range report.Bands {
			band := &report.Bands[b]
			if freq > band.LowHz && freq <= band.HighHz {
				band.Energy += p
				break
			}
		}
	}

	if report.Total > 0 {
		for b := range report.Bands {
			report.Bands[b].Fraction = report.Bands[b].Energy / report.Total
		}
	}
	return report, nil
}

// LowBandRatio returns the fraction of energy at or below cutoffHz
func LowBandRatio(samples []float32, sampleRate int, cutoffHz float64) (float64, error) {
	report, err := Analyze(samples, sampleRate, []float64{0, cutoffHz, float64(sampleRate) / 2})
	if err != nil {
		return 0, err
	}
	return report.Bands[0].Fraction, nil
}

// PeakFrequency returns the center frequency of the strongest bin
func PeakFrequency(samples []float32, sampleRate int) (float64, error) {
	power, binHz, err := PowerSpectrum(samples, sampleRate)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, p := range power {
		if p > power[best] {
			best = i
		}
	}
	return float64(best+1) * binHz, nil
}

func window(n int) int {
	if n > MaxWindow {
		n = MaxWindow
	}
	w := 1
	for w*2 <= n {
		w *= 2
	}
	if w < 2 {
		return 0
	}
	return w
}
