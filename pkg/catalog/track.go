// ABOUTME: Sound track and synthesis parameter types
// ABOUTME: SynthesisParams is a closed set of tone, binaural, noise and guided variants
package catalog

import (
	"encoding/json"

	"github.com/neurosonic/neurosonic-go/pkg/synth"
)

// Category groups tracks in the browser
type Category string

const (
	Guided     Category = "guided"
	Solfeggio  Category = "solfeggio"
	Brainwaves Category = "brainwaves"
	Noise      Category = "noise"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{Guided, Solfeggio, Brainwaves, Noise}
}

// Kind names the synthesis variant of a track
type Kind string

const (
	KindTone     Kind = "tone"
	KindBinaural Kind = "binaural"
	KindNoise    Kind = "noise"
	KindGuided   Kind = "guided"
)

// Params describes how a track is synthesized. The implementations in
// this package are the only variants.
type Params interface {
	Kind() Kind
	isParams()
}

// ToneParams is a single centred sine tone
type ToneParams struct {
	FrequencyHz float64 `json:"frequency_hz"`
}

// BinauralParams is a hard-panned sine pair base and base+beat
type BinauralParams struct {
	BaseHz float64 `json:"base_hz"`
	BeatHz float64 `json:"beat_hz"`
}

// NoiseParams is a looping colored noise bed
type NoiseParams struct {
	Color synth.Color `json:"color"`
}

// GuidedParams is a narrated session over an ambient bed
type GuidedParams struct {
	ScriptRef string `json:"script_ref"`
}

func (ToneParams) Kind() Kind     { return KindTone }
func (BinauralParams) Kind() Kind { return KindBinaural }
func (NoiseParams) Kind() Kind    { return KindNoise }
func (GuidedParams) Kind() Kind   { return KindGuided }

func (ToneParams) isParams()     {}
func (BinauralParams) isParams() {}
func (NoiseParams) isParams()    {}
func (GuidedParams) isParams()   {}

// Accent is the gradient a UI paints behind a track
type Accent struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SoundTrack is one catalog entry
type SoundTrack struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Accent      Accent
	Params      Params
}

// MarshalJSON flattens the params variant next to its kind
func (t SoundTrack) MarshalJSON() ([]byte, error) {
	var kind Kind
	if t.Params != nil {
		kind = t.Params.Kind()
	}
	return json.Marshal(struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    Category `json:"category"`
		Accent      Accent   `json:"accent"`
		Kind        Kind     `json:"kind"`
		Params      Params   `json:"params"`
	}{t.ID, t.Title, t.Description, t.Category, t.Accent, kind, t.Params})
}
