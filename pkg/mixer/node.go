// ABOUTME: Generator nodes that feed the mix bus
// ABOUTME: Panned sine oscillators and looping mono buffer sources with layer gain
package mixer

import (
	"github.com/neurosonic/neurosonic-go/pkg/synth"
)

// NodeKind names the type of a generator node
type NodeKind string

const (
	KindOscillator NodeKind = "oscillator"
	KindBuffer     NodeKind = "buffer"
)

// NodeInfo is a snapshot of a connected node
type NodeInfo struct {
	Handle    Handle   `json:"handle"`
	Kind      NodeKind `json:"kind"`
	Frequency float64  `json:"frequency,omitempty"`
	Pan       float64  `json:"pan"`
	Gain      float64  `json:"gain"`
	Frames    int      `json:"frames,omitempty"`
	Loop      bool     `json:"loop,omitempty"`
	Label     string   `json:"label,omitempty"`
}

// Node is a source connected to the bus. Render adds interleaved stereo
// into dst. Stop is idempotent; a stopped node renders nothing.
type Node interface {
	Render(dst []float32)
	Stop()
	Info() NodeInfo
}

// OscillatorNode is a sine oscillator with a fixed pan and layer gain
type OscillatorNode struct {
	osc     *synth.Oscillator
	pan     float64
	gain    float64
	left    float64
	right   float64
	stopped bool
}

// NewOscillatorNode creates a started oscillator node
func NewOscillatorNode(freq, pan, gain float64, sampleRate int) *OscillatorNode {
	l, r := synth.PanGains(pan)
	return &OscillatorNode{
		osc:   synth.NewOscillator(freq, sampleRate),
		pan:   pan,
		gain:  gain,
		left:  l,
		right: r,
	}
}

func (n *OscillatorNode) Render(dst []float32) {
	if n.stopped {
		return
	}
	for i := 0; i+1 < len(dst); i += 2 {
		s := n.osc.Next() * n.gain
		dst[i] += float32(s * n.left)
		dst[i+1] += float32(s * n.right)
	}
}

func (n *OscillatorNode) Stop() {
	n.stopped = true
}

func (n *OscillatorNode) Info() NodeInfo {
	return NodeInfo{
		Kind:      KindOscillator,
		Frequency: n.osc.Frequency(),
		Pan:       n.pan,
		Gain:      n.gain,
	}
}

// BufferNode plays a mono buffer into both channels through its own gain
type BufferNode struct {
	buf     []float32
	pos     int
	loop    bool
	gain    float64
	label   string
	stopped bool
}

// NewBufferNode creates a started buffer source. A looping node wraps
// from the last sample straight back to the first.
func NewBufferNode(buf []float32, gain float64, loop bool, label string) *BufferNode {
	return &BufferNode{
		buf:   buf,
		loop:  loop,
		gain:  gain,
		label: label,
	}
}

func (n *BufferNode) Render(dst []float32) {
	if n.stopped || len(n.buf) == 0 {
		return
	}
	g := float32(n.gain)
	for i := 0; i+1 < len(dst); i += 2 {
		if n.pos >= len(n.buf) {
			if !n.loop {
				n.stopped = true
				return
			}
			n.pos = 0
		}
		s := n.buf[n.pos] * g
		dst[i] += s
		dst[i+1] += s
		n.pos++
	}
}

func (n *BufferNode) Stop() {
	n.stopped = true
}

func (n *BufferNode) Info() NodeInfo {
	return NodeInfo{
		Kind:   KindBuffer,
		Gain:   n.gain,
		Frames: len(n.buf),
		Loop:   n.loop,
		Label:  n.label,
	}
}
