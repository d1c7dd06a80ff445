// ABOUTME: Bubbletea model for the NeuroSonic TUI
// ABOUTME: Category tabs, track list, volume bar and the immersive session view
package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
)

// SubliminalInterval is how often the background word changes in a session
const SubliminalInterval = 4 * time.Second

const volumeStep = 0.05

// Model represents the TUI state
type Model struct {
	// Catalog
	catalog *catalog.Catalog
	text    catalog.Strings
	tab     int
	cursor  int

	// Playback
	activeID string
	playing  bool
	volume   float64
	muted    bool

	// Session
	sessionMode bool
	subtitle    string
	subliminal  string
	subGen      int
	rng         *rand.Rand

	// Environment
	output string
	speech bool
	remote string

	showDebug bool
	showHowTo bool

	width  int
	height int

	controls *Controls
}

// StateMsg carries a controller state change
type StateMsg neurosonic.ControllerState

// LineMsg carries the narrated line of a guided session
type LineMsg string

// StatusMsg updates environment details. Empty fields are ignored.
type StatusMsg struct {
	Output string
	Speech *bool
	Remote string
}

type subliminalMsg struct {
	gen int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StateMsg:
		return m, m.applyState(neurosonic.ControllerState(msg))
	case LineMsg:
		m.subtitle = string(msg)
	case StatusMsg:
		m.applyStatus(msg)
	case subliminalMsg:
		if !m.sessionMode || msg.gen != m.subGen {
			return m, nil
		}
		m.pickSubliminal()
		return m, m.tickSubliminal()
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.sessionMode {
		return m.renderSession()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderTabs())
	b.WriteString(m.renderTracks())
	b.WriteString(m.renderControls())
	if m.showHowTo {
		b.WriteString(m.renderHowTo())
	}
	if m.showDebug {
		b.WriteString(m.renderDebug())
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("250"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("86"))

	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	faintStyle = lipgloss.NewStyle().Faint(true)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Padding(1, 2)

	subliminalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Bold(true)
)

func (m Model) renderHeader() string {
	return titleStyle.Render(m.text.Engine) + "\n"
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, c := range catalog.Categories() {
		label := m.text.CategoryLabel(c)
		if i == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n"
}

func (m Model) renderTracks() string {
	var b strings.Builder
	for i, t := range m.tracks() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		marker := "  "
		if t.ID == m.activeID && m.playing {
			marker = "▶ "
		}

		title := lipgloss.NewStyle().
			Bold(i == m.cursor).
			Foreground(lipgloss.Color(t.Accent.From)).
			Render(t.Title)

		fmt.Fprintf(&b, "%s%s%s\n", cursor, marker, title)
		desc := t.Description
		if guide, ok := m.text.Guide[t.ID]; ok {
			desc = fmt.Sprintf("%s · %s", desc, guide)
		}
		fmt.Fprintf(&b, "      %s\n", descStyle.Render(truncate(desc, 70)))
	}
	return b.String() + "\n"
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " 🔇"
	}
	pct := int(m.volume*100 + 0.5)
	return fmt.Sprintf("Volume: [%s] %d%%%s\n", renderBar(pct, 100, 20), pct, muteIcon)
}

func (m Model) renderHowTo() string {
	h := m.text.HowTo
	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(h.Title) + "\n")
	for _, pair := range [][2]string{
		{h.ConsistencyTitle, h.ConsistencyDesc},
		{h.HeadphonesTitle, h.HeadphonesDesc},
		{h.SafetyTitle, h.SafetyDesc},
	} {
		fmt.Fprintf(&b, "  %s: %s\n", pair[0], descStyle.Render(pair[1]))
	}
	return b.String()
}

func (m Model) renderDebug() string {
	speech := "no"
	if m.speech {
		speech = "yes"
	}
	remote := m.remote
	if remote == "" {
		remote = "off"
	}
	return faintStyle.Render(fmt.Sprintf("\nDEBUG: output=%s speech=%s remote=%s locale=%s active=%q",
		m.output, speech, remote, m.catalog.Locale(), m.activeID)) + "\n"
}

func (m Model) renderHelp() string {
	return faintStyle.Render("\n←/→:Category  ↑/↓:Select  enter:Play/Stop  s:Stop  +/-:Volume  m:Mute  l:Language  h:Guide  d:Debug  q:Quit") + "\n"
}

func (m Model) renderSession() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.text.Engine) + "\n")
	if m.subliminal != "" {
		b.WriteString(subliminalStyle.Render(m.subliminal) + "\n")
	}

	subtitle := m.subtitle
	if subtitle == "" {
		subtitle = "..."
	}
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	b.WriteString(subtitleStyle.Width(wrap).Render(subtitle) + "\n")
	b.WriteString(descStyle.Render(m.text.Breathe) + "\n\n")
	b.WriteString(m.renderControls())
	b.WriteString(faintStyle.Render("\nesc:End session  +/-:Volume  m:Mute  q:Quit") + "\n")

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		select {
		case m.controls.quitChan() <- QuitMsg{}:
		default:
		}
		return m, tea.Quit
	case "esc":
		if m.sessionMode {
			m.send(Command{Kind: CmdStop})
		}
	case "left", "shift+tab":
		if !m.sessionMode {
			n := len(catalog.Categories())
			m.tab = (m.tab + n - 1) % n
			m.cursor = 0
		}
	case "right", "tab":
		if !m.sessionMode {
			m.tab = (m.tab + 1) % len(catalog.Categories())
			m.cursor = 0
		}
	case "up", "k":
		if !m.sessionMode && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if !m.sessionMode && m.cursor < len(m.tracks())-1 {
			m.cursor++
		}
	case "enter", " ":
		if t, ok := m.selected(); ok && !m.sessionMode {
			m.send(Command{Kind: CmdPlay, TrackID: t.ID})
		}
	case "s":
		m.send(Command{Kind: CmdStop})
	case "+", "=":
		m.setVolume(m.volume + volumeStep)
	case "-", "_":
		m.setVolume(m.volume - volumeStep)
	case "m":
		m.muted = !m.muted
		m.send(Command{Kind: CmdMute, Muted: m.muted})
	case "l":
		m.send(Command{Kind: CmdLocale, Locale: m.catalog.Locale().Next()})
	case "h":
		m.showHowTo = !m.showHowTo
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

func (m *Model) setVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	// snap to 5% steps
	v = float64(int(v/volumeStep+0.5)) * volumeStep
	m.volume = v
	m.send(Command{Kind: CmdVolume, Volume: v})
}

// send forwards a command without blocking the UI
func (m Model) send(cmd Command) {
	if m.controls == nil {
		return
	}
	select {
	case m.controls.Commands <- cmd:
	default:
	}
}

// applyState updates the model from a controller state change
func (m *Model) applyState(st neurosonic.ControllerState) tea.Cmd {
	if st.Locale != "" && st.Locale != m.catalog.Locale() {
		m.setLocale(st.Locale)
	}
	m.activeID = st.TrackID
	m.playing = st.Playing
	m.volume = st.Volume

	inSession := st.Playing && st.Kind == catalog.KindGuided
	if inSession == m.sessionMode {
		return nil
	}

	m.sessionMode = inSession
	m.subGen++
	if !inSession {
		m.subtitle = ""
		m.subliminal = ""
		return nil
	}
	m.pickSubliminal()
	return m.tickSubliminal()
}

// applyStatus updates environment details from a status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Output != "" {
		m.output = msg.Output
	}
	if msg.Speech != nil {
		m.speech = *msg.Speech
	}
	if msg.Remote != "" {
		m.remote = msg.Remote
	}
}

func (m *Model) setLocale(l catalog.Locale) {
	m.catalog = catalog.New(l)
	m.text = m.catalog.Strings()
	if n := len(m.tracks()); m.cursor >= n {
		m.cursor = 0
	}
}

func (m *Model) pickSubliminal() {
	words := m.text.Subliminals
	if len(words) == 0 {
		return
	}
	m.subliminal = words[m.rng.Intn(len(words))]
}

func (m Model) tickSubliminal() tea.Cmd {
	gen := m.subGen
	return tea.Tick(SubliminalInterval, func(time.Time) tea.Msg {
		return subliminalMsg{gen: gen}
	})
}

func (m Model) tracks() []catalog.SoundTrack {
	return m.catalog.ListByCategory(catalog.Categories()[m.tab])
}

func (m Model) selected() (catalog.SoundTrack, bool) {
	tracks := m.tracks()
	if m.cursor < 0 || m.cursor >= len(tracks) {
		return catalog.SoundTrack{}, false
	}
	return tracks[m.cursor], true
}

func (c *Controls) quitChan() chan QuitMsg {
	if c == nil {
		return nil
	}
	return c.Quit
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
