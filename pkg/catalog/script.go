// ABOUTME: Guided session scripts loaded from YAML
// ABOUTME: Embeds the built-in NSDR scripts and parses user supplied ones
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/neurosonic/neurosonic-go/pkg/synth"
	"gopkg.in/yaml.v3"
)

// ErrScriptNotFound is returned when no script matches a reference and locale
var ErrScriptNotFound = errors.New("script not found")

//go:embed scripts/*.yaml
var scriptFS embed.FS

// ScriptLine is one narrated line and the silence that follows it
type ScriptLine struct {
	Text   string `yaml:"text" json:"text"`
	HoldMs int    `yaml:"hold_ms" json:"hold_ms"`
}

// Hold returns the pause after the line has been spoken
func (l ScriptLine) Hold() time.Duration {
	return time.Duration(l.HoldMs) * time.Millisecond
}

// Ambient is the sound bed that plays under the narration
type Ambient struct {
	BaseHz       float64     `json:"base_hz"`
	BeatHz       float64     `json:"beat_hz"`
	BinauralGain float64     `json:"binaural_gain"`
	Noise        synth.Color `json:"noise"`
	NoiseGain    float64     `json:"noise_gain"`
}

// DefaultAmbient is a 4 Hz theta beat on 150 Hz over quiet pink noise
func DefaultAmbient() Ambient {
	return Ambient{
		BaseHz:       150,
		BeatHz:       4,
		BinauralGain: 0.15,
		Noise:        synth.Pink,
		NoiseGain:    0.05,
	}
}

// GuidedScript is an ordered narration with its ambient bed
type GuidedScript struct {
	ID      string
	Locale  Locale
	Title   string
	Ambient Ambient
	Lines   []ScriptLine
}

// Duration is the sum of every hold, excluding speaking time
func (s GuidedScript) Duration() time.Duration {
	var d time.Duration
	for _, l := range s.Lines {
		d += l.Hold()
	}
	return d
}

type scriptFile struct {
	ID      string       `yaml:"id"`
	Locale  string       `yaml:"locale"`
	Title   string       `yaml:"title"`
	Ambient *ambientFile `yaml:"ambient"`
	Lines   []ScriptLine `yaml:"lines"`
}

type ambientFile struct {
	BaseHz       *float64     `yaml:"base_hz"`
	BeatHz       *float64     `yaml:"beat_hz"`
	BinauralGain *float64     `yaml:"binaural_gain"`
	Noise        *synth.Color `yaml:"noise"`
	NoiseGain    *float64     `yaml:"noise_gain"`
}

// ParseScript decodes a YAML script. Missing ambient fields take the
// DefaultAmbient values.
func ParseScript(data []byte) (GuidedScript, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return GuidedScript{}, fmt.Errorf("failed to parse script: %w", err)
	}

	locale := DefaultLocale
	if f.Locale != "" {
		l, err := ParseLocale(f.Locale)
		if err != nil {
			return GuidedScript{}, err
		}
		locale = l
	}

	if len(f.Lines) == 0 {
		return GuidedScript{}, fmt.Errorf("script %q has no lines", f.ID)
	}
	for i, line := range f.Lines {
		if strings.TrimSpace(line.Text) == "" {
			return GuidedScript{}, fmt.Errorf("script %q line %d is empty", f.ID, i+1)
		}
		if line.HoldMs < 0 {
			return GuidedScript{}, fmt.Errorf("script %q line %d has negative hold %dms", f.ID, i+1, line.HoldMs)
		}
	}

	ambient := DefaultAmbient()
	if a := f.Ambient; a != nil {
		if a.BaseHz != nil {
			ambient.BaseHz = *a.BaseHz
		}
		if a.BeatHz != nil {
			ambient.BeatHz = *a.BeatHz
		}
		if a.BinauralGain != nil {
			ambient.BinauralGain = *a.BinauralGain
		}
		if a.Noise != nil {
			ambient.Noise = *a.Noise
		}
		if a.NoiseGain != nil {
			ambient.NoiseGain = *a.NoiseGain
		}
	}
	if !(ambient.BaseHz > 0) || math.IsInf(ambient.BaseHz, 0) {
		return GuidedScript{}, fmt.Errorf("script %q ambient base must be positive, got %v", f.ID, ambient.BaseHz)
	}
	if right := ambient.BaseHz + ambient.BeatHz; !(right > 0) || math.IsInf(right, 0) {
		return GuidedScript{}, fmt.Errorf("script %q ambient beat %v is out of range", f.ID, ambient.BeatHz)
	}

	return GuidedScript{
		ID:      f.ID,
		Locale:  locale,
		Title:   f.Title,
		Ambient: ambient,
		Lines:   f.Lines,
	}, nil
}

// LoadScriptFile reads and parses a script from disk
func LoadScriptFile(path string) (GuidedScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GuidedScript{}, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// Script returns the built-in script ref for locale l
func Script(ref string, l Locale) (GuidedScript, error) {
	name := fmt.Sprintf("scripts/%s.%s.yaml", ref, l)
	data, err := scriptFS.ReadFile(name)
	if err != nil {
		return GuidedScript{}, fmt.Errorf("%w: %s (%s)", ErrScriptNotFound, ref, l)
	}
	return ParseScript(data)
}
