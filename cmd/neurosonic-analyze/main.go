// ABOUTME: Offline spectral report for noise colors and catalog tracks
// ABOUTME: Renders audio without a sound device and prints band energy tables
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/neurosonic/neurosonic-go/internal/spectrum"
	"github.com/neurosonic/neurosonic-go/pkg/audio"
	"github.com/neurosonic/neurosonic-go/pkg/audio/output"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
	"github.com/neurosonic/neurosonic-go/pkg/synth"
)

var (
	colorName  = flag.String("color", "all", "Noise color to analyze (white, pink, brown, green or all)")
	trackID    = flag.String("track", "", "Render a catalog track instead of raw noise")
	sampleRate = flag.Int("sample-rate", audio.DefaultSampleRate, "Sample rate")
	seconds    = flag.Float64("seconds", 3, "Seconds of track audio to render")
	seed       = flag.Int64("seed", 0, "Random seed (0: time based)")
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if *sampleRate <= 0 {
		log.Fatalf("Sample rate must be positive, got %d", *sampleRate)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	if *trackID != "" {
		if err := analyzeTrack(*trackID, rng); err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		return
	}

	colors := synth.Colors()
	if *colorName != "all" {
		c, err := synth.ParseColor(*colorName)
		if err != nil {
			log.Fatalf("Invalid color: %v", err)
		}
		colors = []synth.Color{c}
	}

	for _, c := range colors {
		if err := analyzeNoise(c, rng); err != nil {
			log.Fatalf("Analysis of %s failed: %v", c, err)
		}
	}
}

func analyzeNoise(c synth.Color, rng *rand.Rand) error {
	buf := synth.GenerateNoise(c, *sampleRate, rng)

	report, err := spectrum.Analyze(buf, *sampleRate, spectrum.DefaultEdges(*sampleRate))
	if err != nil {
		return err
	}

	peak := float32(0)
	for _, s := range buf {
		if s > peak {
			peak = s
		} else if -s > peak {
			peak = -s
		}
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s noise", strings.ToUpper(c.String()[:1])+c.String()[1:])))
	fmt.Printf("%d samples, peak %.3f, window %d\n", len(buf), peak, report.Window)
	fmt.Println(bandTable(report))
	fmt.Println()
	return nil
}

func bandTable(report spectrum.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Band (Hz)", "Energy %", "")
	for _, b := range report.Bands {
		pct := b.Fraction * 100
		t.Row(
			fmt.Sprintf("%.0f - %.0f", b.LowHz, b.HighHz),
			fmt.Sprintf("%6.2f", pct),
			strings.Repeat("█", int(pct/2+0.5)),
		)
	}
	return t.String()
}

// analyzeTrack plays a track through the engine into a headless output and
// reports the dominant frequency of each channel
func analyzeTrack(id string, rng *rand.Rand) error {
	out := output.NewNull(false)
	engine := neurosonic.NewAudioEngine(neurosonic.EngineConfig{
		SampleRate: *sampleRate,
		Output:     out,
		Rand:       rng,
	})
	ctrl := neurosonic.NewController(engine, neurosonic.ControllerConfig{
		Volume: 1,
	})
	defer ctrl.Close()

	track, ok := ctrl.Catalog().FindByID(id)
	if !ok {
		return fmt.Errorf("unknown track %q", id)
	}
	if track.Params.Kind() == catalog.KindGuided {
		log.Printf("Guided track: analyzing the ambient bed only")
	}
	ctrl.Play(id)

	frames := int(*seconds * float64(*sampleRate))
	pcm := out.Pump(frames)
	if pcm == nil {
		return fmt.Errorf("output produced no audio")
	}

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := 0; i < frames; i++ {
		left[i] = pcm[2*i]
		right[i] = pcm[2*i+1]
	}

	fmt.Println(headerStyle.Render(track.Title))
	fmt.Printf("%s · %s · %d nodes\n", track.Category, track.Params.Kind(), len(engine.ActiveNodes()))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Channel", "Peak Hz", "< 250 Hz %")
	for _, ch := range []struct {
		name    string
		samples []float32
	}{{"left", left}, {"right", right}} {
		peak, err := spectrum.PeakFrequency(ch.samples, *sampleRate)
		if err != nil {
			return err
		}
		low, err := spectrum.LowBandRatio(ch.samples, *sampleRate, 250)
		if err != nil {
			return err
		}
		t.Row(ch.name, fmt.Sprintf("%.1f", peak), fmt.Sprintf("%.1f", low*100))
	}
	fmt.Println(t.String())
	return nil
}
