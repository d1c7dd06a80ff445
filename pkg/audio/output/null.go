// ABOUTME: Headless output that renders without a sound device
// ABOUTME: Paces the bus in real time or renders on demand for tests and analysis
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
)

// NullChunk is the block length rendered per tick in realtime mode
const NullChunk = 20 * time.Millisecond

// Null output discards audio. In realtime mode a ticker renders one chunk
// every NullChunk so scheduled gain changes still progress; otherwise
// nothing renders until Pump is called.
type Null struct {
	source
	realtime bool

	stateMu   sync.Mutex
	open      bool
	suspended bool
	frames    int64
	stopChan  chan struct{}
}

// NewNull creates a headless output
func NewNull(realtime bool) *Null {
	return &Null{realtime: realtime}
}

func (n *Null) Name() string { return "none" }

// Open attaches the renderer and starts the ticker in realtime mode
func (n *Null) Open(format audio.Format, src audio.Renderer) error {
	n.attach(format, src)

	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	if n.open {
		return nil
	}
	n.open = true
	n.stopChan = make(chan struct{})

	if n.realtime {
		go n.run(format, n.stopChan)
	}
	return nil
}

func (n *Null) run(format audio.Format, stop chan struct{}) {
	ticker := time.NewTicker(NullChunk)
	defer ticker.Stop()

	frames := int(int64(format.SampleRate) * int64(NullChunk) / int64(time.Second))
	buf := make([]float32, frames*format.Channels)

	for {
		select {
		case <-ticker.C:
			n.render(buf)
		case <-stop:
			return
		}
	}
}

// Pump renders frames immediately and returns them. A suspended or
// closed output renders nothing and returns nil.
func (n *Null) Pump(frames int) []float32 {
	buf := make([]float32, frames*n.channelCount())
	if !n.render(buf) {
		return nil
	}
	return buf
}

func (n *Null) render(buf []float32) bool {
	n.stateMu.Lock()
	active := n.open && !n.suspended
	n.stateMu.Unlock()
	if !active {
		return false
	}

	n.fill(buf)

	n.stateMu.Lock()
	n.frames += int64(len(buf) / n.channelCount())
	n.stateMu.Unlock()
	return true
}

// Frames returns the number of frames rendered so far
func (n *Null) Frames() int64 {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	return n.frames
}

// Suspended reports whether the output is paused
func (n *Null) Suspended() bool {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	return n.suspended
}

// Suspend pauses rendering
func (n *Null) Suspend() error {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	n.suspended = true
	return nil
}

// Resume restarts rendering
func (n *Null) Resume() error {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	if !n.open {
		return fmt.Errorf("output not opened")
	}
	n.suspended = false
	return nil
}

// Close stops the ticker and detaches the renderer
func (n *Null) Close() error {
	n.stateMu.Lock()
	if n.open {
		close(n.stopChan)
	}
	n.open = false
	n.stateMu.Unlock()

	n.attach(audio.Format{}, nil)
	return nil
}
