package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

// Model is the Bubble Tea model for one game session. Input goes straight
// into the session's signal; the picture comes from its surface.
type Model struct {
	session  *Session
	keys     KeyMap
	help     help.Model
	fps      int
	cols     int
	quitting bool
	summary  *Summary
}

// NewModel creates a model for a session on a terminal cols cells wide.
func NewModel(session *Session, cols, fps int) Model {
	h := help.New()
	h.Width = cols
	return Model{
		session: session,
		keys:    DefaultKeyMap(),
		help:    h,
		fps:     fps,
		cols:    cols,
	}
}

// Init starts the session and the repaint ticks.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		ApplyMouse(msg, m.cols, m.session.Input())
		return m, nil

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.help.Width = msg.Width
		m.session.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.ApplyKey(msg, m.session.Input()) {
	case CommandQuit:
		summary := m.session.Stop()
		m.summary = &summary
		m.quitting = true
		return m, tea.Quit
	case CommandPause:
		m.session.TogglePause()
	case CommandHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the latest frame with the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.session.Surface().View())
	sb.WriteRune('\n')
	if !m.session.Running() {
		sb.WriteString(pausedStyle.Render("paused "))
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Summary returns the session summary once the model has quit.
func (m Model) Summary() (Summary, bool) {
	if m.summary == nil {
		return Summary{}, false
	}
	return *m.summary, true
}

// Run plays a session in the current terminal until the player quits and
// returns the final summary.
func Run(session *Session, cols, fps int) (Summary, error) {
	p := tea.NewProgram(
		NewModel(session, cols, fps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		if summary, done := m.Summary(); done {
			return summary, err
		}
	}
	// Interrupted without a quit key.
	return session.Stop(), err
}
