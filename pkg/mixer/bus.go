// ABOUTME: Mix bus summing generator nodes through a master gain stage
// ABOUTME: Owns the render clock that gain automation is scheduled against
package mixer

import (
	"sync"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
	"github.com/neurosonic/neurosonic-go/pkg/synth"
)

// Handle identifies a connected node
type Handle uint64

// Bus sums every connected node and applies the master gain.
// It is safe for concurrent use: the output device pulls Render from its
// own goroutine while the engine connects and automates.
type Bus struct {
	mu     sync.Mutex
	format audio.Format
	master *synth.Param
	nodes  map[Handle]Node
	order  []Handle
	next   Handle
	frames int64
}

// NewBus creates a stereo bus with the given initial master gain
func NewBus(sampleRate int, masterGain float64) *Bus {
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	return &Bus{
		format: audio.Format{SampleRate: sampleRate, Channels: audio.Stereo},
		master: synth.NewParam(masterGain),
		nodes:  make(map[Handle]Node),
	}
}

// Format returns the rendered stream format
func (b *Bus) Format() audio.Format {
	return b.format
}

// CurrentTime returns seconds rendered so far
func (b *Bus) CurrentTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now()
}

// Connect attaches a node and returns its handle
func (b *Bus) Connect(n Node) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	h := b.next
	b.nodes[h] = n
	b.order = append(b.order, h)
	return h
}

// Disconnect stops and detaches a node. Unknown or already
// disconnected handles are ignored and report false.
func (b *Bus) Disconnect(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes[h]
	if !ok {
		return false
	}
	n.Stop()
	delete(b.nodes, h)
	for i, oh := range b.order {
		if oh == h {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of connected nodes
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}

// Nodes returns a snapshot of connected nodes in connection order
func (b *Bus) Nodes() []NodeInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	infos := make([]NodeInfo, 0, len(b.order))
	for _, h := range b.order {
		info := b.nodes[h].Info()
		info.Handle = h
		infos = append(infos, info)
	}
	return infos
}

// Automate runs fn with the master gain param and the current bus time.
// fn runs under the bus lock and must not call back into the bus.
func (b *Bus) Automate(fn func(master *synth.Param, now float64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.master, b.now())
}

// MasterGain returns the most recently rendered master gain
func (b *Bus) MasterGain() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.master.Value()
}

// Render fills dst with interleaved stereo and advances the clock
func (b *Bus) Render(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, h := range b.order {
		b.nodes[h].Render(dst)
	}

	rate := float64(b.format.SampleRate)
	frames := len(dst) / audio.Stereo
	for i := 0; i < frames; i++ {
		g := float32(b.master.ValueAt(float64(b.frames+int64(i)) / rate))
		dst[2*i] *= g
		dst[2*i+1] *= g
	}
	b.frames += int64(frames)
}

func (b *Bus) now() float64 {
	return float64(b.frames) / float64(b.format.SampleRate)
}
