// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the channels that carry user commands out
package ui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
)

// CommandKind identifies a user action
type CommandKind int

const (
	CmdPlay CommandKind = iota
	CmdStop
	CmdVolume
	CmdMute
	CmdLocale
)

// Command is a user action for the playback goroutine
type Command struct {
	Kind    CommandKind
	TrackID string
	Volume  float64
	Muted   bool
	Locale  catalog.Locale
}

// QuitMsg signals that the user asked to quit
type QuitMsg struct{}

// Controls holds channels for commands leaving the TUI
type Controls struct {
	Commands chan Command
	Quit     chan QuitMsg
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Commands: make(chan Command, 10),
		Quit:     make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model for the catalog locale
func NewModel(ctrls *Controls, locale catalog.Locale, volume float64) Model {
	m := Model{
		volume:   volume,
		controls: ctrls,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.setLocale(locale)
	return m
}

// Run creates the TUI program. The caller starts it with Run on the program.
func Run(ctrls *Controls, locale catalog.Locale, volume float64) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrls, locale, volume), tea.WithAltScreen())
	return p, nil
}
