// ABOUTME: espeak-ng command line speech backend
// ABOUTME: Runs one process per utterance so cancellation kills speech at once
package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// espeak defaults that the relative utterance values scale
const (
	espeakWordsPerMinute = 175
	espeakPitch          = 50
	espeakAmplitude      = 100
)

// Espeak speaks through the espeak-ng (or espeak) binary
type Espeak struct {
	binary string
}

// NewEspeak locates the speech binary. An empty binary searches PATH for
// espeak-ng and then espeak.
func NewEspeak(binary string) (*Espeak, error) {
	candidates := []string{"espeak-ng", "espeak"}
	if binary != "" {
		candidates = []string{binary}
	}

	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err == nil {
			log.Printf("Speech synthesis via %s", path)
			return &Espeak{binary: path}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s not found in PATH (install with: apt install espeak-ng)", ErrNoSpeech, strings.Join(candidates, " or "))
}

// Binary returns the resolved executable path
func (e *Espeak) Binary() string {
	return e.binary
}

// Voices lists installed voices
func (e *Espeak) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, e.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	return parseVoices(out), nil
}

// Speak runs the binary for one utterance and waits for it to exit
func (e *Espeak) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.binary, espeakArgs(u)...)
	cmd.Stdin = strings.NewReader(u.Text)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}

// espeakArgs maps relative rate, pitch and volume onto espeak's absolute scales
func espeakArgs(u Utterance) []string {
	var args []string

	switch {
	case u.Voice.ID != "":
		args = append(args, "-v", u.Voice.ID)
	case u.Lang != "":
		args = append(args, "-v", strings.ToLower(u.Lang))
	}

	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	pitch := u.Pitch
	if pitch <= 0 {
		pitch = 1
	}
	volume := u.Volume
	if volume < 0 {
		volume = 0
	} else if volume > 2 {
		volume = 2
	}

	wpm := int(math.Round(espeakWordsPerMinute * rate))
	p := int(math.Round(espeakPitch * pitch))
	if p > 99 {
		p = 99
	}

	args = append(args,
		"-s", strconv.Itoa(wpm),
		"-p", strconv.Itoa(p),
		"-a", strconv.Itoa(int(math.Round(espeakAmplitude*volume))),
		"--stdin",
	)
	return args
}

// parseVoices reads the table printed by --voices:
//
//	Pty Language Age/Gender VoiceName File Other Languages
//	 5  en-us    --/M       English_(America) gmw/en-US (en 3)
func parseVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		voices = append(voices, Voice{
			ID:   fields[4],
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: fields[1],
		})
	}
	return voices
}
