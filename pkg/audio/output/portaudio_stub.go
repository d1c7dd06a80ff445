//go:build !portaudio

// ABOUTME: PortAudio backend placeholder for builds without the portaudio tag
// ABOUTME: Selecting it fails at Open so the engine falls back to silent playback
package output

import (
	"errors"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// ErrPortAudioDisabled is returned by every stub method
var ErrPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

func (p *PortAudio) Name() string { return "portaudio" }

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, src audio.Renderer) error {
	return ErrPortAudioDisabled
}

// Suspend pauses the stream
func (p *PortAudio) Suspend() error {
	return ErrPortAudioDisabled
}

// Resume restarts the stream
func (p *PortAudio) Resume() error {
	return ErrPortAudioDisabled
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
