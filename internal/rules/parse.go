package rules

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrQuit is returned by ParseMove for 'Q'/'q'. It is an input-layer signal,
// not a move.
var ErrQuit = errors.New("quit requested")

// ErrInvalidInput matches every *InputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputErrorKind classifies a rejected input character.
type InputErrorKind int

const (
	// InvalidInputCharacter: the character maps to no move and is not quit.
	InvalidInputCharacter InputErrorKind = iota + 1
	// VariantIncompatibleCharacter: the character names a move that is not
	// legal in the active variant.
	VariantIncompatibleCharacter
)

// String returns the kind name.
func (k InputErrorKind) String() string {
	switch k {
	case InvalidInputCharacter:
		return "InvalidInputCharacter"
	case VariantIncompatibleCharacter:
		return "VariantIncompatibleCharacter"
	default:
		return "Unknown"
	}
}

// InputError is a recoverable parse failure. Message is meant for the user;
// the caller re-prompts.
type InputError struct {
	Kind    InputErrorKind
	Char    rune
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s (%q)", e.Message, e.Char)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// MoveForKey maps a move character to its move regardless of variant.
func MoveForKey(ch rune) (Move, bool) {
	up := unicode.ToUpper(ch)
	for _, m := range AllMoves() {
		if m.Key() == up {
			return m, true
		}
	}
	return MoveNone, false
}

// ParseMove parses a single, case-insensitive move character for variant v.
func ParseMove(v Variant, ch rune) (Move, error) {
	if unicode.ToUpper(ch) == 'Q' {
		return MoveNone, ErrQuit
	}

	m, ok := MoveForKey(ch)
	if !ok {
		return MoveNone, &InputError{
			Kind:    InvalidInputCharacter,
			Char:    ch,
			Message: "Unknown character! Please try again.",
		}
	}
	if !v.Legal(m) {
		return MoveNone, &InputError{
			Kind:    VariantIncompatibleCharacter,
			Char:    ch,
			Message: "Wrong character! Please try again.",
		}
	}
	return m, nil
}
