// ABOUTME: Silent synthesizer that only waits as long as speech would take
// ABOUTME: Keeps subtitle pacing when no speech backend is installed
package speech

import (
	"context"
	"strings"
	"time"
)

// DefaultWordsPerMinute approximates a calm narration pace at rate 1
const DefaultWordsPerMinute = 160

// minimum time a line stays up even when it is a single word
const minSpokenDuration = 1500 * time.Millisecond

// Paced is a Synthesizer that produces no sound and blocks for the
// estimated speaking time of each utterance
type Paced struct {
	WordsPerMinute int
}

// NewPaced creates a silent synthesizer at the default pace
func NewPaced() *Paced {
	return &Paced{WordsPerMinute: DefaultWordsPerMinute}
}

// Voices returns no voices
func (p *Paced) Voices(ctx context.Context) ([]Voice, error) {
	return nil, nil
}

// Speak waits for the estimated duration or until ctx is cancelled
func (p *Paced) Speak(ctx context.Context, u Utterance) error {
	timer := time.NewTimer(p.Estimate(u))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Estimate returns how long u would take to speak.
// Ellipses count as a pause of one word each.
func (p *Paced) Estimate(u Utterance) time.Duration {
	wpm := p.WordsPerMinute
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}

	words := len(strings.Fields(u.Text)) + strings.Count(u.Text, "...")
	d := time.Duration(float64(words) / (float64(wpm) * rate) * float64(time.Minute))
	if d < minSpokenDuration {
		d = minSpokenDuration
	}
	return d
}
