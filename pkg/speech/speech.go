// ABOUTME: Speech synthesis interface and voice selection
// ABOUTME: Defines voices, utterances and the locale-aware voice picker
package speech

import (
	"context"
	"errors"
	"strings"
)

// ErrNoSpeech is returned when no speech backend can be found
var ErrNoSpeech = errors.New("no speech synthesizer available")

// QualityHints are voice-name fragments that mark higher quality voices
var QualityHints = []string{"Google", "Microsoft", "Natural"}

// Voice is one installed synthesis voice
type Voice struct {
	ID   string // backend identifier passed back when speaking
	Name string
	Lang string // language tag as reported by the backend, e.g. "en-us"
}

// Utterance is a single line to speak
type Utterance struct {
	Text   string
	Lang   string  // BCP-47 tag such as "pt-BR"
	Voice  Voice   // zero value selects the platform default
	Rate   float64 // 1 is normal speed
	Pitch  float64 // 1 is normal pitch
	Volume float64 // 0..1
}

// Synthesizer speaks utterances. Speak blocks until the utterance has
// finished or ctx is cancelled, in which case speech stops immediately
// and ctx.Err() is returned.
type Synthesizer interface {
	Voices(ctx context.Context) ([]Voice, error)
	Speak(ctx context.Context, u Utterance) error
}

// SelectVoice picks a voice for a BCP-47 language tag. A voice whose
// language matches and whose name carries a quality hint wins; any
// matching voice comes next. When nothing matches it reports false and
// the caller should leave the voice unset.
func SelectVoice(voices []Voice, lang string) (Voice, bool) {
	primary := primaryTag(lang)
	if primary == "" {
		return Voice{}, false
	}

	var fallback *Voice
	for i := range voices {
		v := &voices[i]
		if primaryTag(v.Lang) != primary {
			continue
		}
		if hasQualityHint(v.Name) {
			return *v, true
		}
		if fallback == nil {
			fallback = v
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Voice{}, false
}

func primaryTag(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

func hasQualityHint(name string) bool {
	for _, hint := range QualityHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}
