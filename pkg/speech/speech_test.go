// ABOUTME: Tests for voice selection and the espeak backend helpers
// ABOUTME: Covers locale matching, argument mapping and voice table parsing
package speech

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSelectVoice(t *testing.T) {
	voices := []Voice{
		{ID: "gmw/en-GB", Name: "English", Lang: "en-gb"},
		{ID: "roa/pt-BR", Name: "Portuguese (Brazil)", Lang: "pt-br"},
		{ID: "ms-en", Name: "Microsoft Aria Online (Natural)", Lang: "en-US"},
		{ID: "roa/pt", Name: "Portuguese", Lang: "pt"},
	}

	tests := []struct {
		name   string
		voices []Voice
		lang   string
		wantID string
		wantOK bool
	}{
		{"quality hint wins", voices, "en-US", "ms-en", true},
		{"first locale match", voices, "pt-BR", "roa/pt-BR", true},
		{"no locale match", voices, "de-DE", "", false},
		{"empty list", nil, "en-US", "", false},
		{"empty tag", voices, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := SelectVoice(tt.voices, tt.lang)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if v.ID != tt.wantID {
				t.Errorf("expected %q, got %q", tt.wantID, v.ID)
			}
		})
	}
}

func TestEspeakArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    Utterance
		expected []string
	}{
		{
			"narration settings",
			Utterance{Lang: "en-US", Rate: 0.85, Pitch: 0.9, Volume: 1},
			[]string{"-v", "en-us", "-s", "149", "-p", "45", "-a", "100", "--stdin"},
		},
		{
			"explicit voice",
			Utterance{Voice: Voice{ID: "roa/pt-BR"}, Lang: "pt-BR", Rate: 1, Pitch: 1, Volume: 0.5},
			[]string{"-v", "roa/pt-BR", "-s", "175", "-p", "50", "-a", "50", "--stdin"},
		},
		{
			"defaults",
			Utterance{},
			[]string{"-s", "175", "-p", "50", "-a", "0", "--stdin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := espeakArgs(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseVoices(t *testing.T) {
	out := []byte(`Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 2  en-us           --/M      English_(America)  gmw/en-US            (en 3)
 5  pt-br           --/M      Portuguese_(Brazil) roa/pt-BR           (pt 5)
`)

	voices := parseVoices(out)
	if len(voices) != 3 {
		t.Fatalf("expected 3 voices, got %d", len(voices))
	}

	want := Voice{ID: "gmw/en-US", Name: "English (America)", Lang: "en-us"}
	if voices[1] != want {
		t.Errorf("expected %+v, got %+v", want, voices[1])
	}

	v, ok := SelectVoice(voices, "pt-BR")
	if !ok || v.ID != "roa/pt-BR" {
		t.Errorf("expected pt-BR voice, got %+v (ok=%v)", v, ok)
	}
}

func TestNewEspeakMissingBinary(t *testing.T) {
	_, err := NewEspeak("definitely-not-a-speech-binary")
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("expected ErrNoSpeech, got %v", err)
	}
}

func TestPacedEstimate(t *testing.T) {
	p := &Paced{WordsPerMinute: 120}

	short := p.Estimate(Utterance{Text: "Breathe.", Rate: 1})
	if short != minSpokenDuration {
		t.Errorf("expected minimum duration, got %v", short)
	}

	// 6 words at 120 wpm = 3s, slowed by rate 0.5 = 6s
	long := p.Estimate(Utterance{Text: "one two three four five six", Rate: 0.5})
	if long != 6*time.Second {
		t.Errorf("expected 6s, got %v", long)
	}
}

func TestPacedSpeakCancel(t *testing.T) {
	p := &Paced{WordsPerMinute: 1}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- p.Speak(ctx, Utterance{Text: "a very long line that would take hours", Rate: 1})
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Speak did not return after cancel")
	}
}
