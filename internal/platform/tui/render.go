package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorTitle:    lipgloss.NewStyle().Foreground(colorTeal).Bold(true),
	core.ColorMenu:     lipgloss.NewStyle().Foreground(colorSand),
	core.ColorButton:   lipgloss.NewStyle().Foreground(colorBurgundy),
	core.ColorOverview: lipgloss.NewStyle().Foreground(colorMauve),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(colorCoral).Bold(true),
	core.ColorWin:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	core.ColorLose:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	core.ColorDraw:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
