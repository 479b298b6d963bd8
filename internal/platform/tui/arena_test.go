package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

func TestDrawArena(t *testing.T) {
	tests := []struct {
		name     string
		a        arena
		contains []string
	}{
		{
			name:     "picking",
			a:        arena{LeftLabel: "You", RightLabel: "Computer", Left: rules.Rock},
			contains: []string{"You", "Computer", "Rock", "(@)", "VS", "?"},
		},
		{
			name:     "countdown",
			a:        arena{LeftLabel: "You", RightLabel: "Computer", Left: rules.Spock, Countdown: 2},
			contains: []string{"Spock", "2"},
		},
		{
			name:     "resolved",
			a:        arena{LeftLabel: "You", RightLabel: "bob", Left: rules.Fire, Right: rules.Water, Outcome: rules.Lose},
			contains: []string{"Fire", "Water", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := drawArena(60, tt.a)
			if s.Height() != arenaHeight {
				t.Errorf("Height() = %d, expected %d", s.Height(), arenaHeight)
			}
			text := s.String()
			for _, want := range tt.contains {
				if !strings.Contains(text, want) {
					t.Errorf("arena missing %q:\n%s", want, text)
				}
			}
		})
	}
}

func TestDrawArenaMinimumWidth(t *testing.T) {
	s := drawArena(10, arena{})
	if s.Width() != arenaMinimum {
		t.Errorf("Width() = %d, expected %d", s.Width(), arenaMinimum)
	}
}

func TestDrawArenaOutcomeColors(t *testing.T) {
	s := drawArena(60, arena{Left: rules.Rock, Right: rules.Scissors, Outcome: rules.Win})

	left := 60/2 - arenaGap/2 - arenaBoxW
	right := 60/2 + arenaGap/2
	if got := s.GetCell(left, 2).Color; got != core.ColorWin {
		t.Errorf("left box color = %v, expected %v", got, core.ColorWin)
	}
	if got := s.GetCell(right, 2).Color; got != core.ColorLose {
		t.Errorf("right box color = %v, expected %v", got, core.ColorLose)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "You win", core.ColorWin)
	s.DrawText(0, 1, "VS", core.ColorMuted)

	out := RenderScreen(s)
	if !strings.Contains(out, "You win") || !strings.Contains(out, "VS") {
		t.Errorf("RenderScreen() = %q, expected the drawn text", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}
