package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

func TestMapGameKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name    string
		key     tea.KeyMsg
		variant rules.Variant
		action  core.Action
		slot    int
	}{
		{"left arrow", leftKey, rules.VariantNormal, core.ActionLeft, 0},
		{"right arrow", rightKey, rules.VariantNormal, core.ActionRight, 0},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, rules.VariantNormal, core.ActionUp, 0},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, rules.VariantNormal, core.ActionDown, 0},
		{"enter", enterKey, rules.VariantNormal, core.ActionConfirm, 0},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, rules.VariantNormal, core.ActionConfirm, 0},
		{"esc", escKey, rules.VariantNormal, core.ActionBack, 0},
		{"n", runeKey("n"), rules.VariantNormal, core.ActionRestart, 0},
		{"q", runeKey("q"), rules.VariantNormal, core.ActionQuit, 0},
		{"ctrl+c", ctrlCKey, rules.VariantNormal, core.ActionQuit, 0},
		{"digit", runeKey("2"), rules.VariantNormal, core.ActionSelect, 2},
		{"l is lizard", runeKey("l"), rules.VariantSpockLizard, core.ActionSelect, 5},
		{"h is not left", runeKey("h"), rules.VariantNormal, core.ActionNone, 0},
		{"b is not back", runeKey("b"), rules.VariantNormal, core.ActionNone, 0},
		{"l outside spock-lizard", runeKey("l"), rules.VariantNormal, core.ActionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := km.MapGameKey(tt.key, tt.variant)
			if got.Action != tt.action {
				t.Errorf("MapGameKey(%q).Action = %v, expected %v", tt.key.String(), got.Action, tt.action)
			}
			if tt.slot != 0 && got.Slot != tt.slot {
				t.Errorf("MapGameKey(%q).Slot = %d, expected %d", tt.key.String(), got.Slot, tt.slot)
			}
		})
	}
}
