// ABOUTME: Event fan-out to websocket listeners
// ABOUTME: Slow listeners drop events instead of blocking the broadcaster
package remote

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/neurosonic/neurosonic-go/internal/version"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
)

// Event types sent on the websocket stream
const (
	EventHello = "hello"
	EventState = "state"
	EventLine  = "line"
)

const listenerBuffer = 16

// Event is one message on the event stream
type Event struct {
	Type     string                      `json:"type"`
	Time     time.Time                   `json:"time"`
	ClientID string                      `json:"client_id,omitempty"`
	Product  string                      `json:"product,omitempty"`
	Version  string                      `json:"version,omitempty"`
	State    *neurosonic.ControllerState `json:"state,omitempty"`
	Line     string                      `json:"line,omitempty"`
}

// StateEvent wraps a controller state change
func StateEvent(st neurosonic.ControllerState) Event {
	return Event{Type: EventState, Time: time.Now(), State: &st}
}

// LineEvent wraps a narrated line
func LineEvent(text string) Event {
	return Event{Type: EventLine, Time: time.Now(), Line: text}
}

func helloEvent(id string, st neurosonic.ControllerState) Event {
	return Event{
		Type:     EventHello,
		Time:     time.Now(),
		ClientID: id,
		Product:  version.Product,
		Version:  version.Version,
		State:    &st,
	}
}

type listener struct {
	id   string
	send chan Event
}

// Hub tracks websocket listeners and broadcasts events to them
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]*listener
	dropped   atomic.Uint64
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{listeners: make(map[string]*listener)}
}

// add registers a listener whose first event is built by greet
func (h *Hub) add(greet func(id string) Event) *listener {
	l := &listener{
		id:   uuid.NewString(),
		send: make(chan Event, listenerBuffer),
	}
	l.send <- greet(l.id)
	h.mu.Lock()
	h.listeners[l.id] = l
	h.mu.Unlock()
	return l
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(l.send)
	}
}

// Broadcast queues ev for every listener. It never blocks; a listener
// whose buffer is full misses the event.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, l := range h.listeners {
		select {
		case l.send <- ev:
		default:
			h.dropped.Add(1)
		}
	}
}

// Dropped returns how many events were lost to full listener buffers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Len returns the number of connected listeners
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Close disconnects every listener
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, l := range h.listeners {
		delete(h.listeners, id)
		close(l.send)
	}
}
