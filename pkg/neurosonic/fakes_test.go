// ABOUTME: Test doubles for the session clock and speech synthesizer
// ABOUTME: Lets tests fire hold timers by hand and observe spoken utterances
package neurosonic

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/neurosonic/neurosonic-go/pkg/speech"
)

type fakeTimer struct {
	clock   *fakeClock
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock records timers instead of running them
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// pending returns timers that are neither stopped nor fired
func (c *fakeClock) pending() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// last returns the most recently scheduled timer, stopped or not
func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

// fire runs a pending timer's callback as if it had elapsed
func (c *fakeClock) fire(t *fakeTimer) {
	c.mu.Lock()
	t.fired = true
	c.mu.Unlock()
	t.f()
}

// fakeSynth records utterances. When blocking, Speak waits for release
// or cancellation.
type fakeSynth struct {
	mu       sync.Mutex
	voices   []speech.Voice
	spoken   []speech.Utterance
	canceled int
	blocking bool

	started chan string
	release chan struct{}
}

func newFakeSynth(blocking bool) *fakeSynth {
	return &fakeSynth{
		blocking: blocking,
		started:  make(chan string, 32),
		release:  make(chan struct{}),
	}
}

func (s *fakeSynth) Voices(ctx context.Context) ([]speech.Voice, error) {
	return s.voices, nil
}

func (s *fakeSynth) Speak(ctx context.Context, u speech.Utterance) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, u)
	s.mu.Unlock()
	s.started <- u.Text

	if !s.blocking {
		return nil
	}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		s.canceled++
		s.mu.Unlock()
		return ctx.Err()
	}
}

func (s *fakeSynth) utterances() []speech.Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]speech.Utterance, len(s.spoken))
	copy(out, s.spoken)
	return out
}

func (s *fakeSynth) canceledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

// lineRecorder collects onLineChange calls
type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) record(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

func (r *lineRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// waitFor polls cond until it holds or three seconds pass
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
