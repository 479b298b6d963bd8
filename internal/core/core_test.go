package core

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

func TestDecodeMoveKey(t *testing.T) {
	tests := []struct {
		name    string
		variant rules.Variant
		ch      rune
		action  Action
		slot    int
		wantErr bool
	}{
		{"digit in range", rules.VariantNormal, '2', ActionSelect, 2, false},
		{"digit out of range", rules.VariantNormal, '4', ActionNone, 0, false},
		{"digit five spock", rules.VariantSpockLizard, '5', ActionSelect, 5, false},
		{"letter rock", rules.VariantNormal, 'r', ActionSelect, 1, false},
		{"letter water", rules.VariantFireWater, 'W', ActionSelect, 5, false},
		{"letter spock in normal", rules.VariantNormal, 'o', ActionNone, 0, true},
		{"unknown letter", rules.VariantNormal, 'z', ActionNone, 0, true},
		{"quit", rules.VariantNormal, 'q', ActionQuit, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeMoveKey(tc.variant, tc.ch)
			if got.Action != tc.action {
				t.Errorf("Action = %v, expected %v", got.Action, tc.action)
			}
			if got.Slot != tc.slot {
				t.Errorf("Slot = %d, expected %d", got.Slot, tc.slot)
			}
			if (got.Err != nil) != tc.wantErr {
				t.Errorf("Err = %v, wantErr %v", got.Err, tc.wantErr)
			}
			if got.Err != nil && !errors.Is(got.Err, rules.ErrInvalidInput) {
				t.Errorf("Err = %v, expected an invalid input error", got.Err)
			}
		})
	}
}

func TestPlayerOpponent(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("Opponent() is not symmetric")
	}
	if PlayerNone.Opponent() != PlayerNone {
		t.Errorf("PlayerNone.Opponent() = %v, expected PlayerNone", PlayerNone.Opponent())
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickInterval() != 100*time.Millisecond {
		t.Errorf("TickInterval() = %v, expected 100ms", cfg.TickInterval())
	}

	cfg.Seed = 42
	if cfg.EffectiveSeed() != 42 {
		t.Errorf("EffectiveSeed() = %d, expected 42", cfg.EffectiveSeed())
	}

	cfg.Seed = 0
	if cfg.EffectiveSeed() == 0 {
		t.Error("EffectiveSeed() returned 0 for a time based seed")
	}
}
