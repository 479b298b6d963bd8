package tui

import (
	"strconv"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Arena geometry.
const (
	arenaHeight  = 8
	arenaBoxW    = 18
	arenaBoxH    = 5
	arenaGap     = 8
	arenaMinimum = 2*arenaBoxW + arenaGap
)

// arena describes the two move boxes shown during a round.
// Outcome is seen from the left side; OutcomeNone means unresolved.
type arena struct {
	LeftLabel  string
	RightLabel string
	Left       rules.Move // MoveNone draws "?"
	Right      rules.Move
	Countdown  int // > 0 replaces "VS" with the number
	Outcome    rules.Outcome
}

// drawArena renders a onto a fresh screen of the given width.
func drawArena(width int, a arena) *core.Screen {
	width = max(width, arenaMinimum)
	s := core.NewScreen(width, arenaHeight)

	left := core.NewRect(width/2-arenaGap/2-arenaBoxW, 2, arenaBoxW, arenaBoxH)
	right := core.NewRect(width/2+arenaGap/2, 2, arenaBoxW, arenaBoxH)

	leftColor, rightColor := core.ColorButton, core.ColorButton
	if a.Outcome != rules.OutcomeNone {
		leftColor = core.OutcomeColor(a.Outcome)
		rightColor = core.OutcomeColor(a.Outcome.Invert())
	}

	drawMoveBox(s, left, a.LeftLabel, a.Left, leftColor)
	drawMoveBox(s, right, a.RightLabel, a.Right, rightColor)

	middle := core.NewRect(left.Right(), 0, right.X-left.Right(), arenaHeight)
	switch {
	case a.Countdown > 0:
		s.DrawTextCentered(middle, 4, strconv.Itoa(a.Countdown), core.ColorAccent)
	default:
		s.DrawTextCentered(middle, 4, "VS", core.ColorMuted)
	}
	return s
}

func drawMoveBox(s *core.Screen, r core.Rect, label string, m rules.Move, c core.Color) {
	s.DrawTextCentered(r, r.Y-1, label, core.ColorMenu)
	s.DrawBox(r, c)

	inner := r.Inset(1)
	if m == rules.MoveNone {
		s.DrawTextCentered(inner, inner.Y+1, "?", core.ColorMuted)
		return
	}
	s.DrawTextCentered(inner, inner.Y, moveGlyph(m), c)
	s.DrawTextCentered(inner, inner.Y+2, m.String(), c)
}

// moveGlyph is a small text icon for each move.
func moveGlyph(m rules.Move) string {
	switch m {
	case rules.Rock:
		return "(@)"
	case rules.Paper:
		return "[=]"
	case rules.Scissors:
		return "8<"
	case rules.Spock:
		return "\\\\//"
	case rules.Lizard:
		return "<:=~"
	case rules.Fire:
		return "(^)"
	case rules.Water:
		return "~~~"
	default:
		return "?"
	}
}
