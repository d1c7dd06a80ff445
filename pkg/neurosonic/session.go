// ABOUTME: Guided session sequencer narrating script lines over an ambient bed
// ABOUTME: Keeps at most one pending continuation and discards stale completions
package neurosonic

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/speech"
)

// Narration settings for guided sessions
const (
	NarrationRate   = 0.85
	NarrationPitch  = 0.9
	NarrationVolume = 1.0
)

// SessionState is the sequencer state
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionFinished
)

func (s SessionState) String() string {
	switch s {
	case SessionRunning:
		return "running"
	case SessionFinished:
		return "finished"
	default:
		return "idle"
	}
}

// SessionStatus is a snapshot of the sequencer
type SessionStatus struct {
	RunID     string       `json:"run_id,omitempty"`
	ScriptID  string       `json:"script_id,omitempty"`
	State     SessionState `json:"-"`
	StateName string       `json:"state"`
	LineIndex int          `json:"line_index"`
	LineCount int          `json:"line_count"`
	Narrating bool         `json:"narrating"`
	LastLine  string       `json:"last_line,omitempty"`
}

// ScriptPlayer narrates a GuidedScript line by line. Each line is shown
// through onLineChange, spoken, then held for its hold duration before the
// next one starts. After the last line narration ends and the ambient
// layers keep playing until Stop.
//
// onLineChange runs while the player lock is held, so once Stop returns no
// callback of the stopped run can begin. The callback must not call Stop
// or Start itself.
type ScriptPlayer struct {
	engine   *AudioEngine
	narrator speech.Synthesizer
	clock    Clock

	mu        sync.Mutex
	state     SessionState
	run       uint64
	runID     string
	script    catalog.GuidedScript
	locale    catalog.Locale
	index     int
	lastLine  string
	narrating bool
	onLine    func(string)
	cancel    context.CancelFunc
	timer     Timer

	voiceMu sync.Mutex
	voices  []speech.Voice
	loaded  bool
}

func newScriptPlayer(e *AudioEngine, narrator speech.Synthesizer, clock Clock) *ScriptPlayer {
	return &ScriptPlayer{
		engine:   e,
		narrator: narrator,
		clock:    clock,
	}
}

// Start stops whatever is playing, starts the script's ambient layers and
// narrates line 0. Calling Start again restarts from the beginning.
func (p *ScriptPlayer) Start(script catalog.GuidedScript, locale catalog.Locale, onLineChange func(string)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.halt()
	p.engine.stopNodes()

	amb := script.Ambient
	p.engine.PlayBinaural(amb.BaseHz, amb.BeatHz, amb.BinauralGain)
	p.engine.PlayNoise(amb.Noise, amb.NoiseGain)

	if len(script.Lines) == 0 {
		log.Printf("Script %q has no lines, playing ambient only", script.ID)
		p.state = SessionFinished
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.run++
	p.runID = uuid.NewString()
	p.script = script
	p.locale = locale
	p.onLine = onLineChange
	p.cancel = cancel
	p.state = SessionRunning

	log.Printf("Starting session %s: script=%s locale=%s lines=%d", p.runID, script.ID, locale, len(script.Lines))
	p.narrate(ctx, p.run, 0)
}

// Stop cancels the pending hold timer and any speech in progress. The
// ambient layers are left to the engine. Safe to call at any time.
func (p *ScriptPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.halt()
}

// halt invalidates the current run. Must be called with p.mu held.
func (p *ScriptPlayer) halt() {
	if p.state != SessionIdle {
		log.Printf("Stopping session %s at line %d", p.runID, p.index)
	}

	p.run++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.narrating = false
	p.state = SessionIdle
	p.onLine = nil
	p.index = 0
	p.lastLine = ""
}

// narrate shows and speaks line i of the current run. Must be called with p.mu held.
func (p *ScriptPlayer) narrate(ctx context.Context, run uint64, i int) {
	line := p.script.Lines[i]
	p.index = i
	p.lastLine = line.Text
	if p.onLine != nil {
		p.onLine(line.Text)
	}

	u := speech.Utterance{
		Text:   line.Text,
		Lang:   p.locale.Tag(),
		Rate:   NarrationRate,
		Pitch:  NarrationPitch,
		Volume: NarrationVolume,
	}
	p.narrating = true
	go p.speak(ctx, run, i, u)
}

func (p *ScriptPlayer) speak(ctx context.Context, run uint64, i int, u speech.Utterance) {
	if v, ok := speech.SelectVoice(p.voiceList(ctx), u.Lang); ok {
		u.Voice = v
	}

	err := p.narrator.Speak(ctx, u)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Speech failed on line %d: %v", i+1, err)
	}
	p.spoken(ctx, run, i)
}

// spoken arms the hold timer once line i has finished
func (p *ScriptPlayer) spoken(ctx context.Context, run uint64, i int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if run != p.run {
		return
	}
	p.narrating = false

	hold := p.script.Lines[i].Hold()
	p.timer = p.clock.AfterFunc(hold, func() {
		p.advance(ctx, run, i+1)
	})
}

func (p *ScriptPlayer) advance(ctx context.Context, run uint64, next int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if run != p.run {
		return
	}
	p.timer = nil

	if next >= len(p.script.Lines) {
		log.Printf("Session %s narration finished", p.runID)
		p.state = SessionFinished
		if p.cancel != nil {
			p.cancel()
			p.cancel = nil
		}
		return
	}
	p.narrate(ctx, run, next)
}

func (p *ScriptPlayer) voiceList(ctx context.Context) []speech.Voice {
	p.voiceMu.Lock()
	defer p.voiceMu.Unlock()

	if p.loaded {
		return p.voices
	}
	voices, err := p.narrator.Voices(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Failed to list voices: %v", err)
			p.loaded = true
		}
		return nil
	}
	p.voices = voices
	p.loaded = true
	return voices
}

// IsNarrating reports whether a line is being spoken right now
func (p *ScriptPlayer) IsNarrating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.narrating
}

// Status returns a snapshot of the sequencer
func (p *ScriptPlayer) Status() SessionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := SessionStatus{
		State:     p.state,
		StateName: p.state.String(),
		Narrating: p.narrating,
	}
	if p.state != SessionIdle {
		st.RunID = p.runID
		st.ScriptID = p.script.ID
		st.LineIndex = p.index
		st.LineCount = len(p.script.Lines)
		st.LastLine = p.lastLine
	}
	return st
}
