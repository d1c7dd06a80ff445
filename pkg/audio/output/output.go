// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for pull-model playback backends
package output

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// Output represents an audio output device that pulls samples from a Renderer
type Output interface {
	// Open initializes the device and starts pulling from src
	Open(format audio.Format, src audio.Renderer) error

	// Suspend pauses the device without releasing it
	Suspend() error

	// Resume restarts a suspended device
	Resume() error

	// Close releases output resources
	Close() error

	// Name identifies the backend in logs
	Name() string
}

// Muter is implemented by outputs that support muting
type Muter interface {
	SetMuted(muted bool)
	IsMuted() bool
}

// New creates an output by backend name: "oto", "portaudio" or "none"
func New(backend string) (Output, error) {
	switch strings.ToLower(backend) {
	case "", "oto":
		return NewOto(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "none", "null":
		return NewNull(true), nil
	default:
		return nil, fmt.Errorf("unknown output backend %q", backend)
	}
}

// source wraps the renderer shared by every backend and applies mute
type source struct {
	mu     sync.Mutex
	r      audio.Renderer
	muted  bool
	format audio.Format
}

func (s *source) attach(format audio.Format, r audio.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.format = format
	s.r = r
}

// fill renders into dst, writing silence when detached or muted.
// A muted stream keeps rendering so the bus clock stays in step.
func (s *source) fill(dst []float32) {
	s.mu.Lock()
	r, muted := s.r, s.muted
	s.mu.Unlock()

	if r == nil {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	r.Render(dst)
	if muted {
		for i := range dst {
			dst[i] = 0
		}
	}
}

func (s *source) channelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.format.Channels <= 0 {
		return audio.Stereo
	}
	return s.format.Channels
}

// SetMuted sets mute state
func (s *source) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// IsMuted returns mute state
func (s *source) IsMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}
