// ABOUTME: Audio engine that layers tone, binaural and noise generators on one bus
// ABOUTME: Probes capabilities once and degrades silently when output or speech is missing
package neurosonic

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
	"github.com/neurosonic/neurosonic-go/pkg/audio/output"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/mixer"
	"github.com/neurosonic/neurosonic-go/pkg/speech"
	"github.com/neurosonic/neurosonic-go/pkg/synth"
)

const (
	// NominalToneLevel is the master gain a pure tone fades up to
	NominalToneLevel = 0.3

	// ToneFadeIn is how long a pure tone takes to reach NominalToneLevel
	ToneFadeIn = 2 * time.Second

	// DefaultBinauralGain is the per-ear layer gain of a binaural beat
	DefaultBinauralGain = 0.3

	// DefaultNoiseGain is the layer gain of a noise bed
	DefaultNoiseGain = 0.2

	// VolumeTimeConstant smooths master volume changes, in seconds
	VolumeTimeConstant = 0.1
)

// Capabilities records which platform features were found at construction.
// HasAudioOutput drops to false if the device later fails to open.
type Capabilities struct {
	HasAudioOutput     bool `json:"has_audio_output"`
	HasSpeechSynthesis bool `json:"has_speech_synthesis"`
}

// EngineConfig holds engine configuration
type EngineConfig struct {
	// SampleRate of the mix bus (default 48000)
	SampleRate int

	// Output device. Nil runs the engine without sound; nodes are still
	// connected so state can be inspected.
	Output output.Output

	// Speech synthesizer for guided sessions. Nil disables narration;
	// subtitles then advance at an estimated reading pace.
	Speech speech.Synthesizer

	// Clock schedules hold timers between narrated lines (default: real time)
	Clock Clock

	// Rand seeds noise synthesis (default: time seeded)
	Rand *rand.Rand
}

// AudioEngine owns the mix bus and every generator connected to it
type AudioEngine struct {
	config EngineConfig
	caps   Capabilities

	mu        sync.Mutex
	bus       *mixer.Bus
	out       output.Output
	opened    bool
	suspended bool
	handles   []mixer.Handle
	rng       *rand.Rand

	session *ScriptPlayer
}

// NewAudioEngine creates an engine. The bus and output are created lazily
// on first playback.
func NewAudioEngine(config EngineConfig) *AudioEngine {
	if config.SampleRate <= 0 {
		config.SampleRate = audio.DefaultSampleRate
	}
	if config.Clock == nil {
		config.Clock = realClock{}
	}
	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &AudioEngine{
		config: config,
		caps: Capabilities{
			HasAudioOutput:     config.Output != nil,
			HasSpeechSynthesis: config.Speech != nil,
		},
		out: config.Output,
		rng: rng,
	}

	narrator := config.Speech
	if narrator == nil {
		narrator = speech.NewPaced()
	}
	e.session = newScriptPlayer(e, narrator, config.Clock)
	return e
}

// Capabilities returns what was probed at construction
func (e *AudioEngine) Capabilities() Capabilities {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.caps
}

// Session returns the guided session player
func (e *AudioEngine) Session() *ScriptPlayer {
	return e.session
}

// IsNarrating reports whether a guided line is being spoken
func (e *AudioEngine) IsNarrating() bool {
	return e.session.IsNarrating()
}

// ensureContext creates the bus on first use and opens or resumes the output.
// Must be called with e.mu held.
func (e *AudioEngine) ensureContext() *mixer.Bus {
	e.ensureBus()
	if e.out == nil {
		return e.bus
	}

	if !e.opened {
		if err := e.out.Open(e.bus.Format(), e.bus); err != nil {
			log.Printf("Audio output %s unavailable, continuing silently: %v", e.out.Name(), err)
			e.out = nil
			e.caps.HasAudioOutput = false
			return e.bus
		}
		e.opened = true
		log.Printf("Audio output %s opened: %dHz", e.out.Name(), e.bus.Format().SampleRate)
	}

	if e.suspended {
		if err := e.out.Resume(); err != nil {
			log.Printf("Failed to resume audio output: %v", err)
		}
		e.suspended = false
	}
	return e.bus
}

// PlayTone stops everything and fades a centred sine up to NominalToneLevel.
// Non-positive or non-finite frequencies are ignored.
func (e *AudioEngine) PlayTone(frequencyHz float64) {
	if !validFrequency(frequencyHz) {
		log.Printf("Ignoring tone with invalid frequency %v", frequencyHz)
		return
	}

	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	bus := e.ensureContext()
	node := mixer.NewOscillatorNode(frequencyHz, 0, 1, e.config.SampleRate)
	e.handles = append(e.handles, bus.Connect(node))

	bus.Automate(func(master *synth.Param, now float64) {
		master.CancelScheduledValues(now)
		master.SetValueAtTime(0, now)
		master.LinearRampToValueAtTime(NominalToneLevel, now+ToneFadeIn.Seconds())
	})
}

// validFrequency reports whether f is a positive finite frequency
func validFrequency(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// PlayBinaural adds a left oscillator at baseHz and a right one at
// baseHz+beatHz, each at layer gain. Existing layers keep playing.
// The effect needs headphones; nothing checks for them.
func (e *AudioEngine) PlayBinaural(baseHz, beatHz, gain float64) {
	if !validFrequency(baseHz) || !validFrequency(baseHz+beatHz) {
		log.Printf("Ignoring binaural beat with invalid frequencies %v/%v", baseHz, beatHz)
		return
	}
	gain = audio.Clamp(gain, 0, 1)

	e.mu.Lock()
	defer e.mu.Unlock()

	bus := e.ensureContext()
	left := mixer.NewOscillatorNode(baseHz, -1, gain, e.config.SampleRate)
	right := mixer.NewOscillatorNode(baseHz+beatHz, 1, gain, e.config.SampleRate)
	e.handles = append(e.handles, bus.Connect(left), bus.Connect(right))
}

// PlayNoise synthesizes a two second buffer of colour c and loops it at
// layer gain. Existing layers keep playing.
func (e *AudioEngine) PlayNoise(c synth.Color, gain float64) {
	if _, err := c.MarshalText(); err != nil {
		log.Printf("Ignoring noise: %v", err)
		return
	}
	gain = audio.Clamp(gain, 0, 1)

	e.mu.Lock()
	defer e.mu.Unlock()

	bus := e.ensureContext()
	buf := synth.GenerateNoise(c, e.config.SampleRate, e.rng)
	node := mixer.NewBufferNode(buf, gain, true, fmt.Sprintf("%s noise", c))
	e.handles = append(e.handles, bus.Connect(node))
}

// StartSession runs a guided script over its ambient bed
func (e *AudioEngine) StartSession(script catalog.GuidedScript, locale catalog.Locale, onLineChange func(string)) {
	e.session.Start(script, locale, onLineChange)
}

// Stop cancels narration and disconnects every node. Safe to call at any time.
func (e *AudioEngine) Stop() {
	e.session.Stop()
	e.stopNodes()
}

func (e *AudioEngine) stopNodes() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bus == nil {
		e.handles = nil
		return
	}
	for _, h := range e.handles {
		e.bus.Disconnect(h)
	}
	e.handles = nil
}

// Suspend pauses the output device. The next playback resumes it.
func (e *AudioEngine) Suspend() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil || !e.opened || e.suspended {
		return
	}
	if err := e.out.Suspend(); err != nil {
		log.Printf("Failed to suspend audio output: %v", err)
		return
	}
	e.suspended = true
}

// SetVolume glides the master gain to v, clamped to [0, 1]. A tone fade-in
// still in progress is cut short so the new volume wins.
func (e *AudioEngine) SetVolume(v float64) {
	v = audio.Clamp(v, 0, 1)

	e.mu.Lock()
	defer e.mu.Unlock()

	bus := e.ensureBus()
	bus.Automate(func(master *synth.Param, now float64) {
		master.CancelAndHoldAtTime(now)
		master.SetTargetAtTime(v, now, VolumeTimeConstant)
	})
}

// ensureBus creates the bus without touching the output. Must be called with e.mu held.
func (e *AudioEngine) ensureBus() *mixer.Bus {
	if e.bus == nil {
		e.bus = mixer.NewBus(e.config.SampleRate, 1)
	}
	return e.bus
}

// Mute silences the output without stopping the generators
func (e *AudioEngine) Mute(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m, ok := e.out.(output.Muter); ok {
		m.SetMuted(muted)
	}
}

// MasterGain returns the most recently rendered master gain
func (e *AudioEngine) MasterGain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bus == nil {
		return 1
	}
	return e.bus.MasterGain()
}

// CurrentTime returns seconds rendered on the bus
func (e *AudioEngine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bus == nil {
		return 0
	}
	return e.bus.CurrentTime()
}

// ActiveNodes returns the nodes currently connected to the bus
func (e *AudioEngine) ActiveNodes() []mixer.NodeInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bus == nil {
		return nil
	}
	return e.bus.Nodes()
}

// Close stops playback and releases the output device
func (e *AudioEngine) Close() error {
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out == nil || !e.opened {
		return nil
	}
	e.opened = false
	e.suspended = false
	if err := e.out.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
