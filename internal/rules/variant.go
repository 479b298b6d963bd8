package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// Variant selects the rule set and the legal move subset.
// VariantNone is the transient "not chosen yet" value and is never resolvable.
type Variant int

const (
	VariantNone Variant = iota
	VariantNormal
	VariantSpockLizard
	VariantFireWater
)

// Variants returns every playable variant in menu order.
func Variants() []Variant {
	return []Variant{VariantNormal, VariantSpockLizard, VariantFireWater}
}

// Valid reports whether v is a playable variant.
func (v Variant) Valid() bool {
	return v >= VariantNormal && v <= VariantFireWater
}

// MaxSlots returns the number of selectable slots (3 for Normal, 5 otherwise).
func (v Variant) MaxSlots() int {
	switch v {
	case VariantNormal:
		return 3
	case VariantSpockLizard, VariantFireWater:
		return 5
	default:
		return 0
	}
}

// SlotToMove maps a 1-based selection slot to a move.
// Slots 1-3 are Rock, Paper, Scissors in every variant; slots 4 and 5 are the
// variant's extra moves.
func (v Variant) SlotToMove(slot int) (Move, bool) {
	if slot < 1 || slot > v.MaxSlots() {
		return MoveNone, false
	}
	switch slot {
	case 1:
		return Rock, true
	case 2:
		return Paper, true
	case 3:
		return Scissors, true
	}
	switch v {
	case VariantSpockLizard:
		if slot == 4 {
			return Spock, true
		}
		return Lizard, true
	case VariantFireWater:
		if slot == 4 {
			return Fire, true
		}
		return Water, true
	}
	return MoveNone, false
}

// MoveToSlot is the inverse of SlotToMove. It returns 0 for moves that are
// not legal under v.
func (v Variant) MoveToSlot(m Move) int {
	for slot := 1; slot <= v.MaxSlots(); slot++ {
		if got, _ := v.SlotToMove(slot); got == m {
			return slot
		}
	}
	return 0
}

// Moves returns the legal moves of the variant in slot order.
func (v Variant) Moves() []Move {
	moves := make([]Move, 0, v.MaxSlots())
	for slot := 1; slot <= v.MaxSlots(); slot++ {
		m, _ := v.SlotToMove(slot)
		moves = append(moves, m)
	}
	return moves
}

// Legal reports whether m may be played under v.
func (v Variant) Legal(m Move) bool {
	return v.MoveToSlot(m) != 0
}

// DisplayName returns the human-readable variant name.
func (v Variant) DisplayName() string {
	switch v {
	case VariantNormal:
		return "Normal game"
	case VariantSpockLizard:
		return "Spock-lizard variation"
	case VariantFireWater:
		return "Fire-water variation"
	default:
		return "None"
	}
}

// Key returns the stable identifier used in config files, storage and URLs.
func (v Variant) Key() string {
	switch v {
	case VariantNormal:
		return "normal"
	case VariantSpockLizard:
		return "spock-lizard"
	case VariantFireWater:
		return "fire-water"
	default:
		return "none"
	}
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return v.Key()
}

// ParseVariant parses a variant key. Underscores and case are ignored, and the
// short aliases "classic", "spock" and "fire" are accepted.
func ParseVariant(s string) (Variant, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch key {
	case "normal", "classic":
		return VariantNormal, nil
	case "spock-lizard", "spocklizard", "spock":
		return VariantSpockLizard, nil
	case "fire-water", "firewater", "fire":
		return VariantFireWater, nil
	}
	return VariantNone, fmt.Errorf("rules: unknown variant %q", s)
}

// MoveMenu returns the text prompt listing the variant's move keys.
func (v Variant) MoveMenu() string {
	var b strings.Builder
	b.WriteString("\nEnter your move:\n\n")
	for _, m := range v.Moves() {
		k := m.Key()
		fmt.Fprintf(&b, "%c|%c %s\n", k, unicode.ToLower(k), m)
	}
	b.WriteString("\nQ|q Finish game")
	return b.String()
}
