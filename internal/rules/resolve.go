package rules

import "fmt"

// Outcome is the result of a round from the mover's perspective.
type Outcome int

const (
	OutcomeNone Outcome = iota
	Win
	Lose
	Draw
)

// String returns the outcome key used in storage and the HTTP API.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Message returns the player-facing announcement.
func (o Outcome) Message() string {
	switch o {
	case Win:
		return "You win !!!"
	case Lose:
		return "You lose !!!"
	case Draw:
		return "Draw !!!"
	default:
		return ""
	}
}

// Invert returns the same outcome seen from the other side.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	default:
		return o
	}
}

// ParseOutcome parses an outcome key produced by String.
func ParseOutcome(s string) (Outcome, bool) {
	for _, o := range []Outcome{Win, Lose, Draw} {
		if o.String() == s {
			return o, true
		}
	}
	return OutcomeNone, false
}

// Defeats returns the defeats-set of m under v: every move m wins against.
// The result is freshly allocated; callers may keep or modify it.
func (v Variant) Defeats(m Move) []Move {
	switch v {
	case VariantNormal:
		switch m {
		case Rock:
			return []Move{Scissors}
		case Paper:
			return []Move{Rock}
		case Scissors:
			return []Move{Paper}
		}
	case VariantSpockLizard:
		switch m {
		case Rock:
			return []Move{Scissors, Lizard}
		case Paper:
			return []Move{Rock, Spock}
		case Scissors:
			return []Move{Paper, Lizard}
		case Spock:
			return []Move{Rock, Scissors}
		case Lizard:
			return []Move{Paper, Spock}
		}
	case VariantFireWater:
		switch m {
		case Rock:
			return []Move{Scissors, Fire}
		case Paper:
			return []Move{Rock, Water}
		case Scissors:
			return []Move{Paper}
		case Fire:
			return []Move{Paper, Scissors}
		case Water:
			return []Move{Rock, Scissors, Fire}
		}
	}
	return nil
}

// Beats reports whether mover's defeats-set under v contains other.
func (v Variant) Beats(mover, other Move) bool {
	for _, m := range v.Defeats(mover) {
		if m == other {
			return true
		}
	}
	return false
}

// Resolve decides a round between mover and other under v.
//
// Both moves must be legal for v and v must not be VariantNone. Violations
// are caller bugs (the front-end let an impossible selection through) and
// panic instead of returning a value.
func Resolve(mover, other Move, v Variant) Outcome {
	if !v.Valid() {
		panic(fmt.Sprintf("rules: resolve called with variant %v", v))
	}
	if !v.Legal(mover) {
		panic(fmt.Sprintf("rules: move %v is not legal in %v", mover, v))
	}
	if !v.Legal(other) {
		panic(fmt.Sprintf("rules: move %v is not legal in %v", other, v))
	}

	if mover == other {
		return Draw
	}
	if v.Beats(mover, other) {
		return Win
	}
	return Lose
}
