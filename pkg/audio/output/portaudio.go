//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Callback stream that renders the mix bus straight into the device buffer
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// PortAudio output implementation
type PortAudio struct {
	source
	stream  *portaudio.Stream
	running bool
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

func (p *PortAudio) Name() string { return "portaudio" }

// Open initializes PortAudio and starts the stream
func (p *PortAudio) Open(format audio.Format, src audio.Renderer) error {
	p.attach(format, src)
	if p.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0, func(out []float32) {
		p.fill(out)
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	p.running = true
	log.Printf("Audio output initialized: %dHz, %d channels (portaudio)", format.SampleRate, format.Channels)
	return nil
}

// Suspend stops the stream callback
func (p *PortAudio) Suspend() error {
	if p.stream == nil || !p.running {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	p.running = false
	return nil
}

// Resume restarts the stream callback
func (p *PortAudio) Resume() error {
	if p.stream == nil {
		return fmt.Errorf("output not opened")
	}
	if p.running {
		return nil
	}
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	p.running = true
	return nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream == nil {
		return nil
	}
	if p.running {
		if err := p.stream.Stop(); err != nil {
			return err
		}
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	p.stream = nil
	p.running = false
	return portaudio.Terminate()
}
