// ABOUTME: Automatable parameter with scheduled value changes
// ABOUTME: Supports immediate sets, linear ramps and exponential target approach
package synth

import (
	"math"
	"sort"
)

type eventKind int

const (
	eventSet eventKind = iota
	eventLinear
	eventTarget
)

type paramEvent struct {
	kind  eventKind
	time  float64 // set and target: start time; linear: end time
	value float64
	tau   float64

	fromTime  float64
	fromValue float64
}

// Param is a value that changes over time according to scheduled events.
// Times are in seconds on the owning bus clock. Param is not safe for
// concurrent use; the bus serializes access.
type Param struct {
	events []paramEvent

	anchorTime  float64
	anchorValue float64
	targeting   bool
	targetValue float64
	targetTau   float64

	lastTime  float64
	lastValue float64
}

// NewParam creates a parameter holding value
func NewParam(value float64) *Param {
	return &Param{anchorValue: value, lastValue: value}
}

// Value returns the most recently computed value
func (p *Param) Value() float64 {
	return p.lastValue
}

// Pending reports how many scheduled events have not taken effect yet
func (p *Param) Pending() int {
	return len(p.events)
}

// SetValueAtTime jumps to value at time t
func (p *Param) SetValueAtTime(value, t float64) {
	p.insert(paramEvent{kind: eventSet, time: t, value: value})
}

// LinearRampToValueAtTime ramps linearly from the previous event to value, arriving at t
func (p *Param) LinearRampToValueAtTime(value, t float64) {
	ev := paramEvent{kind: eventLinear, time: t, value: value}
	if n := len(p.events); n > 0 {
		ev.fromTime = p.events[n-1].time
		ev.fromValue = p.events[n-1].value
	} else {
		ev.fromTime = p.lastTime
		ev.fromValue = p.lastValue
	}
	p.insert(ev)
}

// SetTargetAtTime approaches value exponentially from start with time constant tau
func (p *Param) SetTargetAtTime(value, start, tau float64) {
	if tau <= 0 {
		p.SetValueAtTime(value, start)
		return
	}
	p.insert(paramEvent{kind: eventTarget, time: start, value: value, tau: tau})
}

// CancelScheduledValues drops every event scheduled at or after t
func (p *Param) CancelScheduledValues(t float64) {
	kept := p.events[:0]
	for _, ev := range p.events {
		if ev.time < t {
			kept = append(kept, ev)
		}
	}
	p.events = kept
}

// CancelAndHoldAtTime drops every event at or after t and holds the value
// the parameter had at t. A ramp in progress stops where it is.
func (p *Param) CancelAndHoldAtTime(t float64) {
	v := p.ValueAt(t)
	p.CancelScheduledValues(p.lastTime)
	p.hold(p.lastTime, v)
}

// ValueAt advances the parameter to time t and returns its value.
// Time never moves backwards; earlier t is treated as the last time seen.
func (p *Param) ValueAt(t float64) float64 {
	if t < p.lastTime {
		t = p.lastTime
	}

	for len(p.events) > 0 {
		ev := p.events[0]

		if ev.kind == eventLinear {
			if t >= ev.time || ev.time <= ev.fromTime {
				p.hold(ev.time, ev.value)
				p.events = p.events[1:]
				continue
			}
			if t < ev.fromTime {
				break
			}
			frac := (t - ev.fromTime) / (ev.time - ev.fromTime)
			return p.record(t, ev.fromValue+(ev.value-ev.fromValue)*frac)
		}

		if t < ev.time {
			break
		}

		switch ev.kind {
		case eventSet:
			p.hold(ev.time, ev.value)
		case eventTarget:
			start := p.current(ev.time)
			p.anchorTime = ev.time
			p.anchorValue = start
			p.targeting = true
			p.targetValue = ev.value
			p.targetTau = ev.tau
		}
		p.events = p.events[1:]
	}

	return p.record(t, p.current(t))
}

func (p *Param) insert(ev paramEvent) {
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].time > ev.time
	})
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
}

func (p *Param) hold(t, value float64) {
	p.anchorTime = t
	p.anchorValue = value
	p.targeting = false
}

func (p *Param) current(t float64) float64 {
	if !p.targeting {
		return p.anchorValue
	}
	return p.targetValue + (p.anchorValue-p.targetValue)*math.Exp(-(t-p.anchorTime)/p.targetTau)
}

func (p *Param) record(t, value float64) float64 {
	p.lastTime = t
	p.lastValue = value
	return value
}
