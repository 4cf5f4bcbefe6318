package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakoutish/internal/core"
)

// nudge is how far one steering key moves the pointer target.
const nudge = 0.1

// KeyMap defines the key bindings of a game session.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Pause  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Pause, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Toggle},
		{k.Pause, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "steer right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "grab/let go"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command is what a key asks the session to do beyond steering.
type Command int

const (
	CommandNone Command = iota
	CommandPause
	CommandHelp
	CommandQuit
)

// ApplyKey feeds a key press into the input signal and returns the session
// command it stands for, if any.
func (k KeyMap) ApplyKey(msg tea.KeyMsg, input *core.Signal) Command {
	ratio, active := input.Read()

	switch {
	case key.Matches(msg, k.Quit):
		return CommandQuit
	case key.Matches(msg, k.Pause):
		return CommandPause
	case key.Matches(msg, k.Help):
		return CommandHelp
	case key.Matches(msg, k.Left):
		input.Press(ratio - nudge)
	case key.Matches(msg, k.Right):
		input.Press(ratio + nudge)
	case key.Matches(msg, k.Toggle):
		if active {
			input.Release()
		} else {
			input.Press(ratio)
		}
	}
	return CommandNone
}

// ApplyMouse maps a mouse event over a screen cols cells wide onto the input
// signal. Only the left button steers.
func ApplyMouse(msg tea.MouseMsg, cols int, input *core.Signal) {
	if cols <= 0 {
		return
	}
	ratio := (float64(msg.X) + 0.5) / float64(cols)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			input.Press(ratio)
		}
	case tea.MouseActionMotion:
		if _, active := input.Read(); active {
			input.Move(ratio)
		}
	case tea.MouseActionRelease:
		input.Release()
	}
}
