// Package tui hosts breakout sessions in a terminal through Bubble Tea,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers a repaint from the surface.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg fps times per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
