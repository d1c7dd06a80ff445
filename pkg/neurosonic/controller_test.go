// ABOUTME: Tests for the playback controller
// ABOUTME: Covers exclusivity, toggle semantics, volume and locale switching
package neurosonic

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/neurosonic/neurosonic-go/pkg/audio/output"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/mixer"
)

type stateRecorder struct {
	mu     sync.Mutex
	states []ControllerState
}

func (r *stateRecorder) record(s ControllerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *stateRecorder) last() ControllerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func newTestController(t *testing.T, config ControllerConfig) (*Controller, *output.Null, *fakeClock) {
	t.Helper()
	out := output.NewNull(false)
	clock := &fakeClock{}
	engine := NewAudioEngine(EngineConfig{
		Output: out,
		Speech: newFakeSynth(false),
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(3)),
	})
	c := NewController(engine, config)
	t.Cleanup(func() { _ = c.Close() })
	return c, out, clock
}

func frequencies(nodes []mixer.NodeInfo) []float64 {
	var out []float64
	for _, n := range nodes {
		if n.Kind == mixer.KindOscillator {
			out = append(out, n.Frequency)
		}
	}
	return out
}

func TestNewControllerDefaults(t *testing.T) {
	c, _, _ := newTestController(t, ControllerConfig{})

	if c.Volume() != DefaultVolume {
		t.Errorf("Expected volume %v, got %v", DefaultVolume, c.Volume())
	}
	if c.Locale() != catalog.DefaultLocale {
		t.Errorf("Expected locale %s, got %s", catalog.DefaultLocale, c.Locale())
	}
	if _, ok := c.Active(); ok {
		t.Error("Expected nothing active initially")
	}
	if st := c.State(); st.Playing {
		t.Errorf("Expected idle state, got %+v", st)
	}
}

func TestControllerExclusivity(t *testing.T) {
	c, _, _ := newTestController(t, ControllerConfig{})

	sequence := []struct {
		id    string
		freqs []float64
		nodes int
	}{
		{"528hz", []float64{528}, 1},
		{"theta", []float64{200, 206}, 2},
		{"brown-noise", nil, 1},
		{"gamma", []float64{400, 440}, 2},
		{"nsdr-session", []float64{150, 154}, 3},
		{"174hz", []float64{174}, 1},
	}

	for _, step := range sequence {
		t.Run(step.id, func(t *testing.T) {
			if !c.Play(step.id) {
				t.Fatalf("Expected %s to be found", step.id)
			}
			nodes := c.Engine().ActiveNodes()
			if len(nodes) != step.nodes {
				t.Fatalf("Expected %d nodes, got %d", step.nodes, len(nodes))
			}
			got := frequencies(nodes)
			if len(got) != len(step.freqs) {
				t.Fatalf("Expected frequencies %v, got %v", step.freqs, got)
			}
			for i := range got {
				if got[i] != step.freqs[i] {
					t.Errorf("Expected frequencies %v, got %v", step.freqs, got)
				}
			}
			if track, ok := c.Active(); !ok || track.ID != step.id {
				t.Errorf("Expected %s active, got %+v", step.id, track)
			}
		})
	}
}

func TestControllerToggle(t *testing.T) {
	c, out, _ := newTestController(t, ControllerConfig{})

	c.Play("alpha")
	if len(c.Engine().ActiveNodes()) != 2 {
		t.Fatal("Expected alpha to start")
	}

	c.Play("alpha")
	if n := len(c.Engine().ActiveNodes()); n != 0 {
		t.Errorf("Expected second play to stop, got %d nodes", n)
	}
	if _, ok := c.Active(); ok {
		t.Error("Expected nothing active after toggle")
	}
	if !out.Suspended() {
		t.Error("Expected output to be suspended while idle")
	}

	// A third play starts again rather than staying stopped
	c.Play("alpha")
	if n := len(c.Engine().ActiveNodes()); n != 2 {
		t.Errorf("Expected alpha to restart, got %d nodes", n)
	}
	if out.Suspended() {
		t.Error("Expected output to resume")
	}
}

func TestControllerUnknownTrack(t *testing.T) {
	states := &stateRecorder{}
	c, _, _ := newTestController(t, ControllerConfig{OnStateChange: states.record})

	c.Play("beta")
	before := states.count()

	if c.Play("does-not-exist") {
		t.Error("Expected unknown id to report false")
	}
	if track, ok := c.Active(); !ok || track.ID != "beta" {
		t.Errorf("Expected beta to keep playing, got %+v", track)
	}
	if n := len(c.Engine().ActiveNodes()); n != 2 {
		t.Errorf("Expected beta nodes untouched, got %d", n)
	}
	if states.count() != before {
		t.Error("Expected no state change for unknown id")
	}
}

func TestControllerStopIsIdempotent(t *testing.T) {
	states := &stateRecorder{}
	c, _, _ := newTestController(t, ControllerConfig{OnStateChange: states.record})

	c.Stop()
	if states.count() != 0 {
		t.Error("Expected stop with nothing playing to be silent")
	}

	c.Play("pink-noise")
	c.Stop()
	c.Stop()

	if n := len(c.Engine().ActiveNodes()); n != 0 {
		t.Errorf("Expected no nodes, got %d", n)
	}
	if states.last().Playing {
		t.Error("Expected last state to be idle")
	}
}

func TestControllerVolume(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"negative", -1, 0},
		{"too loud", 2, 1},
		{"quiet", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestController(t, ControllerConfig{})
			c.Play("white-noise")

			c.SetVolume(tt.input)
			if c.Volume() != tt.expected {
				t.Errorf("Expected volume %v, got %v", tt.expected, c.Volume())
			}

			out.Pump(seconds(2))
			g := c.Engine().MasterGain()
			if g < 0 || g > 1 || g-tt.expected > 1e-3 || tt.expected-g > 1e-3 {
				t.Errorf("Expected master gain %v, got %v", tt.expected, g)
			}
		})
	}
}

func TestControllerPushesVolumeBeforePlay(t *testing.T) {
	c, out, _ := newTestController(t, ControllerConfig{Volume: 0.8})

	c.Play("delta")
	out.Pump(seconds(2))

	if g := c.Engine().MasterGain(); g < 0.799 || g > 0.801 {
		t.Errorf("Expected master gain 0.8, got %v", g)
	}
}

func TestStartGuidedSession(t *testing.T) {
	rec := &lineRecorder{}
	c, _, _ := newTestController(t, ControllerConfig{OnLineChange: rec.record})

	if !c.StartGuidedSession(catalog.Portuguese) {
		t.Fatal("Expected guided session to start")
	}
	if c.Locale() != catalog.Portuguese {
		t.Errorf("Expected locale pt, got %s", c.Locale())
	}

	script, _ := catalog.Script(catalog.NSDRScript, catalog.Portuguese)
	if got := rec.get(); len(got) != 1 || got[0] != script.Lines[0].Text {
		t.Errorf("Expected first Portuguese line, got %v", got)
	}

	// Starting again restarts rather than toggling off
	if !c.StartGuidedSession(catalog.Portuguese) {
		t.Fatal("Expected restart")
	}
	if track, ok := c.Active(); !ok || track.Category != catalog.Guided {
		t.Errorf("Expected guided track active, got %+v", track)
	}
}

func TestControllerScriptFailure(t *testing.T) {
	c, out, _ := newTestController(t, ControllerConfig{
		Scripts: func(string, catalog.Locale) (catalog.GuidedScript, error) {
			return catalog.GuidedScript{}, errors.New("missing")
		},
	})

	c.Play("theta")
	c.Play("nsdr-session")

	if _, ok := c.Active(); ok {
		t.Error("Expected nothing active when the script fails to load")
	}
	if n := len(c.Engine().ActiveNodes()); n != 0 {
		t.Errorf("Expected previous track to be stopped, got %d nodes", n)
	}
	if !out.Suspended() {
		t.Error("Expected idle output to be suspended")
	}
}

func TestControllerSetLocale(t *testing.T) {
	states := &stateRecorder{}
	c, _, _ := newTestController(t, ControllerConfig{OnStateChange: states.record})

	c.Play("pink-noise")
	c.SetLocale(catalog.Portuguese)

	track, ok := c.Active()
	if !ok {
		t.Fatal("Expected track to stay active across locales")
	}
	if track.Title != "Ruído Rosa" {
		t.Errorf("Expected localized title, got %q", track.Title)
	}
	if states.last().Locale != catalog.Portuguese {
		t.Errorf("Expected state locale pt, got %s", states.last().Locale)
	}

	n := states.count()
	c.SetLocale(catalog.Portuguese)
	if states.count() != n {
		t.Error("Expected no state change when locale is unchanged")
	}
}
