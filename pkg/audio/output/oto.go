// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams float32 frames pulled from the mix bus into an oto player
package output

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// DefaultOtoBuffer is the device buffer length requested from oto
const DefaultOtoBuffer = 80 * time.Millisecond

// otoDevice is the part of an oto context the output drives
type otoDevice interface {
	NewPlayer(r io.Reader) otoPlayer
	Suspend() error
	Resume() error
}

type otoPlayer interface {
	Play()
	Close() error
}

// otoContext adapts *oto.Context to otoDevice
type otoContext struct {
	*oto.Context
}

func (c otoContext) NewPlayer(r io.Reader) otoPlayer {
	return c.Context.NewPlayer(r)
}

func newOtoDevice(format audio.Format, bufferSize time.Duration) (otoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan
	return otoContext{ctx}, nil
}

// Oto output implementation using oto library
type Oto struct {
	source
	device     otoDevice
	player     otoPlayer
	bufferSize time.Duration
	newDevice  func(audio.Format, time.Duration) (otoDevice, error)
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{bufferSize: DefaultOtoBuffer, newDevice: newOtoDevice}
}

func (o *Oto) Name() string { return "oto" }

// Open initializes the output device. Opening again after Close starts a
// new player on the existing context.
func (o *Oto) Open(format audio.Format, src audio.Renderer) error {
	o.attach(format, src)

	if o.player != nil {
		log.Printf("Audio output already open")
		return nil
	}

	// oto allows one context per process; keep the first one
	if o.device != nil {
		if err := o.device.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
		o.startPlayer()
		log.Printf("Audio output reopened")
		return nil
	}

	device, err := o.newDevice(format, o.bufferSize)
	if err != nil {
		return err
	}
	o.device = device
	o.startPlayer()

	log.Printf("Audio output initialized: %dHz, %d channels (oto)", format.SampleRate, format.Channels)
	return nil
}

func (o *Oto) startPlayer() {
	o.player = o.device.NewPlayer(&otoReader{out: o})
	o.player.Play()
}

// Suspend pauses the device
func (o *Oto) Suspend() error {
	if o.device == nil {
		return nil
	}
	if err := o.device.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend oto context: %w", err)
	}
	return nil
}

// Resume restarts the device
func (o *Oto) Resume() error {
	if o.device == nil {
		return fmt.Errorf("output not initialized")
	}
	if err := o.device.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}
	return nil
}

// Close stops the player and suspends the context. The context itself
// lives until the process exits.
func (o *Oto) Close() error {
	if o.player == nil {
		return nil
	}
	if err := o.player.Close(); err != nil {
		log.Printf("Failed to close oto player: %v", err)
	}
	o.player = nil
	if err := o.device.Suspend(); err != nil {
		log.Printf("Failed to suspend oto context: %v", err)
	}
	o.attach(audio.Format{}, nil)
	return nil
}

// otoReader adapts the pull renderer to the byte stream oto consumes
type otoReader struct {
	out *Oto
	buf []float32
}

func (r *otoReader) Read(p []byte) (int, error) {
	channels := r.out.channelCount()
	n := len(p) / 4
	n -= n % channels
	if n == 0 {
		return 0, nil
	}
	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]

	r.out.fill(samples)
	audio.PutFloat32LE(p, samples)
	return n * 4, nil
}
