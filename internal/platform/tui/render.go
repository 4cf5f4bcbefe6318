package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breakoutish/internal/core"
)

// colorStyles maps core.Color categories to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorBackground: lipgloss.NewStyle(),
	core.ColorPaddle:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBall:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorBrick:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorText:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorBackground]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
