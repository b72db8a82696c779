package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// cellStyles holds one foreground style per palette color that has an ANSI
// code.
var cellStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style)
	for c := range core.Color(255) {
		if code := c.ANSI(); code != "" {
			styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

// paint writes text in color c. Default-colored text is written bare.
func paint(sb *strings.Builder, c core.Color, text string) {
	style, ok := cellStyles[c]
	if !ok {
		sb.WriteString(text)
		return
	}
	sb.WriteString(style.Render(text))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of same-colored cells share one style so a full board costs a few
// escape sequences per row rather than one per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run.Reset()
		color := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				paint(&sb, color, run.String())
				run.Reset()
				color = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		paint(&sb, color, run.String())
	}
	return sb.String()
}
