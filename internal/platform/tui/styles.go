package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the panels and the arena.
var (
	colorTeal     = lipgloss.Color("#2A9D8F")
	colorSand     = lipgloss.Color("#E9C46A")
	colorBurgundy = lipgloss.Color("#9B2226")
	colorMauve    = lipgloss.Color("#6D597A")
	colorCoral    = lipgloss.Color("#E76F51")
	colorMuted    = lipgloss.Color("241")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTeal)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorSand)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(colorBurgundy).
				Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBurgundy).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMauve).
			Padding(1, 4)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCoral)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))
)

// center places block in the middle of a width x height area.
func center(width, height int, block string) string {
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
