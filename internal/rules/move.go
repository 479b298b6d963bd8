// Package rules is the move-resolution engine shared by every front-end.
// It contains no external dependencies and no mutable state: moves, variants
// and outcomes are closed value types and all tables are switch expressions.
package rules

import "strings"

// Move is a playable symbol. The zero value is not a move.
type Move int

const (
	MoveNone Move = iota
	Rock
	Paper
	Scissors
	Spock
	Lizard
	Fire
	Water
)

// AllMoves returns every playable move in declaration order.
func AllMoves() []Move {
	return []Move{Rock, Paper, Scissors, Spock, Lizard, Fire, Water}
}

// Valid reports whether m is one of the seven playable moves.
func (m Move) Valid() bool {
	return m >= Rock && m <= Water
}

// String returns the friendly name of the move.
func (m Move) String() string {
	switch m {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	case Spock:
		return "Spock"
	case Lizard:
		return "Lizard"
	case Fire:
		return "Fire"
	case Water:
		return "Water"
	default:
		return "None"
	}
}

// Key returns the character that selects the move in text input.
func (m Move) Key() rune {
	switch m {
	case Rock:
		return 'R'
	case Paper:
		return 'P'
	case Scissors:
		return 'S'
	case Spock:
		return 'O'
	case Lizard:
		return 'L'
	case Fire:
		return 'F'
	case Water:
		return 'W'
	default:
		return 0
	}
}

// ParseMoveName maps a case-insensitive move name ("rock", "Spock") to a Move.
func ParseMoveName(name string) (Move, bool) {
	for _, m := range AllMoves() {
		if strings.EqualFold(m.String(), strings.TrimSpace(name)) {
			return m, true
		}
	}
	return MoveNone, false
}
