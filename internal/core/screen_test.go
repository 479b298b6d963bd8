package core

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 10)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 10 {
		t.Errorf("Height() = %d, expected 10", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}

	if empty := NewScreen(-1, -1); empty.Width() != 0 || empty.Height() != 0 {
		t.Errorf("NewScreen(-1, -1) = %dx%d, expected 0x0", empty.Width(), empty.Height())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X', ColorWin)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorWin {
		t.Errorf("GetCell(5, 5) = %+v, expected X/ColorWin", c)
	}

	// Out of bounds writes are silent
	s.Set(-1, 0, 'A', ColorDefault)
	s.Set(100, 0, 'A', ColorDefault)
	s.Set(0, -1, 'A', ColorDefault)
	s.Set(0, 100, 'A', ColorDefault)

	if s.GetCell(-1, 0).Rune != ' ' || s.GetCell(100, 0).Rune != ' ' {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 0, "Rock", ColorTitle)
	if got := s.Row(0); got != "  Rock    " {
		t.Errorf("Row(0) = %q", got)
	}

	// Clipped at the right edge
	s.DrawText(7, 1, "Scissors", ColorDefault)
	if got := s.Row(1); got != "       Sci" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawTextCentered(NewRect(0, 0, 12, 1), 0, "VS", ColorMuted)
	if got := s.Row(0); got != "     VS     " {
		t.Errorf("Row(0) = %q", got)
	}

	// Text wider than the area starts at the left edge
	s.Clear()
	s.DrawTextCentered(NewRect(2, 0, 3, 1), 0, "Lizard", ColorDefault)
	if got := s.Row(0); !strings.HasPrefix(got, "  Lizard") {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorButton)

	expected := "┌───┐\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorButton {
		t.Error("box corner should carry the box color")
	}

	// Too small boxes draw nothing
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorButton)
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("1-wide box drew %q", s.String())
	}
}

func TestRectInsetAndContains(t *testing.T) {
	r := NewRect(2, 3, 10, 6)
	in := r.Inset(1)
	if in != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v", in)
	}
	if got := r.Inset(10); got.W != 0 || got.H != 0 {
		t.Errorf("Inset(10) = %+v, expected empty", got)
	}
	if !r.Contains(2, 3) || r.Contains(12, 3) || r.Contains(2, 9) {
		t.Error("Contains() edge handling is wrong")
	}
	if r.Right() != 12 || r.Bottom() != 9 {
		t.Errorf("Right/Bottom = %d/%d", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 1, 3, 3},
		{0, 1, 3, 1},
		{2, 1, 3, 2},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestOutcomeColor(t *testing.T) {
	if OutcomeColor(rules.Win) != ColorWin || OutcomeColor(rules.Lose) != ColorLose || OutcomeColor(rules.Draw) != ColorDraw {
		t.Error("OutcomeColor() mapping is wrong")
	}
	if OutcomeColor(rules.OutcomeNone) != ColorDefault {
		t.Error("OutcomeColor(None) should be the default color")
	}
}
