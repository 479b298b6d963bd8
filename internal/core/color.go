package core

import "github.com/vovakirdan/tui-rps/internal/rules"

// Color represents a foreground color for a screen cell.
// The platform maps it to a terminal color.
type Color uint8

// Palette used by the arena and panels.
const (
	ColorDefault Color = iota
	ColorTitle         // Teal, the title color
	ColorMenu          // Sand, menu highlights
	ColorButton        // Burgundy, buttons and keys
	ColorOverview      // Mauve, overview backgrounds
	ColorAccent        // Coral, overview titles
	ColorWin
	ColorLose
	ColorDraw
	ColorMuted
)

// OutcomeColor returns the color that announces o.
func OutcomeColor(o rules.Outcome) Color {
	switch o {
	case rules.Win:
		return ColorWin
	case rules.Lose:
		return ColorLose
	case rules.Draw:
		return ColorDraw
	default:
		return ColorDefault
	}
}
