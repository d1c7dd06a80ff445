// ABOUTME: Playback controller enforcing a single active track
// ABOUTME: Toggles tracks, dispatches them to the engine and reports state changes
package neurosonic

import (
	"log"
	"sync"

	"github.com/neurosonic/neurosonic-go/pkg/audio"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
)

// DefaultVolume is the volume a controller starts with
const DefaultVolume = 0.5

// ScriptSource resolves a guided script reference for a locale
type ScriptSource func(ref string, l catalog.Locale) (catalog.GuidedScript, error)

// ControllerConfig holds controller configuration
type ControllerConfig struct {
	// Locale of the catalog and narration (default: catalog.DefaultLocale)
	Locale catalog.Locale

	// Volume in [0, 1]. Zero selects DefaultVolume.
	Volume float64

	// Scripts resolves guided scripts (default: catalog.Script)
	Scripts ScriptSource

	// OnLineChange receives each narrated line of a guided session.
	// It runs on the session goroutine and must not call back into the
	// controller synchronously.
	OnLineChange func(text string)

	// OnStateChange is called after the active track, volume or locale changes
	OnStateChange func(state ControllerState)
}

// ControllerState is a snapshot of the controller
type ControllerState struct {
	TrackID string         `json:"track_id,omitempty"`
	Title   string         `json:"title,omitempty"`
	Kind    catalog.Kind   `json:"kind,omitempty"`
	Playing bool           `json:"playing"`
	Volume  float64        `json:"volume"`
	Locale  catalog.Locale `json:"locale"`
}

// Controller keeps at most one track playing. Starting a track always
// tears down the previous one first.
type Controller struct {
	config ControllerConfig
	engine *AudioEngine

	mu       sync.Mutex
	catalog  *catalog.Catalog
	activeID string
	volume   float64
}

// NewController creates a controller driving engine
func NewController(engine *AudioEngine, config ControllerConfig) *Controller {
	if config.Locale == "" {
		config.Locale = catalog.DefaultLocale
	}
	if config.Volume == 0 {
		config.Volume = DefaultVolume
	}
	if config.Scripts == nil {
		config.Scripts = catalog.Script
	}

	return &Controller{
		config:  config,
		engine:  engine,
		catalog: catalog.New(config.Locale),
		volume:  audio.Clamp(config.Volume, 0, 1),
	}
}

// Engine returns the engine being driven
func (c *Controller) Engine() *AudioEngine {
	return c.engine
}

// Catalog returns the catalog for the current locale
func (c *Controller) Catalog() *catalog.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Play toggles the track with the given id. Unknown ids are logged and
// report false without touching playback.
func (c *Controller) Play(trackID string) bool {
	c.mu.Lock()
	track, ok := c.catalog.FindByID(trackID)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.toggleLocked(track)
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifyStateChange(state)
	return true
}

// Toggle stops track if it is the active one, otherwise starts it
func (c *Controller) Toggle(track catalog.SoundTrack) {
	c.mu.Lock()
	c.toggleLocked(track)
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifyStateChange(state)
}

func (c *Controller) toggleLocked(track catalog.SoundTrack) {
	if c.activeID != "" && c.activeID == track.ID {
		c.stopLocked()
		return
	}
	c.startLocked(track)
}

func (c *Controller) startLocked(track catalog.SoundTrack) {
	c.engine.Stop()
	c.engine.SetVolume(c.volume)

	switch p := track.Params.(type) {
	case catalog.ToneParams:
		c.engine.PlayTone(p.FrequencyHz)
	case catalog.BinauralParams:
		c.engine.PlayBinaural(p.BaseHz, p.BeatHz, DefaultBinauralGain)
	case catalog.NoiseParams:
		c.engine.PlayNoise(p.Color, DefaultNoiseGain)
	case catalog.GuidedParams:
		script, err := c.config.Scripts(p.ScriptRef, c.catalog.Locale())
		if err != nil {
			log.Printf("Failed to load script for %s: %v", track.ID, err)
			c.activeID = ""
			c.engine.Suspend()
			return
		}
		c.engine.StartSession(script, c.catalog.Locale(), c.lineChanged)
	default:
		log.Printf("Track %s has no playable params", track.ID)
		c.activeID = ""
		c.engine.Suspend()
		return
	}

	c.activeID = track.ID
	log.Printf("Playing %s (%s)", track.ID, track.Params.Kind())
}

func (c *Controller) lineChanged(text string) {
	if c.config.OnLineChange != nil {
		c.config.OnLineChange(text)
	}
}

// Stop silences everything and suspends the output
func (c *Controller) Stop() {
	c.mu.Lock()
	wasActive := c.activeID != ""
	c.stopLocked()
	state := c.stateLocked()
	c.mu.Unlock()

	if wasActive {
		c.notifyStateChange(state)
	}
}

func (c *Controller) stopLocked() {
	if c.activeID != "" {
		log.Printf("Stopping %s", c.activeID)
	}
	c.engine.Stop()
	c.engine.Suspend()
	c.activeID = ""
}

// StartGuidedSession switches to locale and starts the guided track from
// the top, even if it is already playing
func (c *Controller) StartGuidedSession(locale catalog.Locale) bool {
	c.mu.Lock()
	c.setLocaleLocked(locale)
	track, ok := c.catalog.FirstOfKind(catalog.KindGuided)
	if !ok {
		c.mu.Unlock()
		log.Printf("No guided session in catalog")
		return false
	}
	c.startLocked(track)
	started := c.activeID == track.ID
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifyStateChange(state)
	return started
}

// SetVolume clamps v to [0, 1] and applies it to the engine
func (c *Controller) SetVolume(v float64) {
	v = audio.Clamp(v, 0, 1)

	c.mu.Lock()
	c.volume = v
	c.engine.SetVolume(v)
	state := c.stateLocked()
	c.mu.Unlock()

	c.notifyStateChange(state)
}

// Volume returns the current volume
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetLocale rebuilds the catalog for l. Playback continues.
func (c *Controller) SetLocale(l catalog.Locale) {
	c.mu.Lock()
	changed := c.setLocaleLocked(l)
	state := c.stateLocked()
	c.mu.Unlock()

	if changed {
		c.notifyStateChange(state)
	}
}

func (c *Controller) setLocaleLocked(l catalog.Locale) bool {
	if l == "" || l == c.catalog.Locale() {
		return false
	}
	log.Printf("Switching locale to %s", l)
	c.catalog = catalog.New(l)
	return true
}

// Locale returns the current locale
func (c *Controller) Locale() catalog.Locale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Locale()
}

// Active returns the playing track, resolved against the current catalog
func (c *Controller) Active() (catalog.SoundTrack, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLocked()
}

func (c *Controller) activeLocked() (catalog.SoundTrack, bool) {
	if c.activeID == "" {
		return catalog.SoundTrack{}, false
	}
	return c.catalog.FindByID(c.activeID)
}

// State returns a snapshot of the controller
func (c *Controller) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() ControllerState {
	st := ControllerState{
		Volume: c.volume,
		Locale: c.catalog.Locale(),
	}
	if track, ok := c.activeLocked(); ok {
		st.TrackID = track.ID
		st.Title = track.Title
		st.Kind = track.Params.Kind()
		st.Playing = true
	}
	return st
}

// Close stops playback and releases the engine
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeID = ""
	return c.engine.Close()
}

func (c *Controller) notifyStateChange(state ControllerState) {
	if c.config.OnStateChange != nil {
		c.config.OnStateChange(state)
	}
}
