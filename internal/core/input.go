package core

import (
	"errors"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow - previous slot
	ActionRight          // Right arrow - next slot
	ActionUp             // Up arrow
	ActionDown           // Down arrow
	ActionSelect         // Digit or move letter - pick a slot directly
	ActionConfirm        // Enter, Space - play the selected move
	ActionBack           // Escape - finish the game
	ActionRestart        // N - reset the running score
	ActionQuit           // Q, Ctrl+C - quit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intent is one decoded key press. Slot is set for ActionSelect only.
// Err carries a rejected move character so the front-end can show the
// parser's message.
type Intent struct {
	Action Action
	Slot   int
	Err    error
}

// DecodeMoveKey turns a typed character into an intent for variant v.
// Digits select a slot, move letters go through rules.ParseMove, and Q quits.
func DecodeMoveKey(v rules.Variant, ch rune) Intent {
	if ch >= '1' && ch <= '9' {
		slot := int(ch - '0')
		if _, ok := v.SlotToMove(slot); ok {
			return Intent{Action: ActionSelect, Slot: slot}
		}
		return Intent{Action: ActionNone}
	}

	m, err := rules.ParseMove(v, ch)
	switch {
	case errors.Is(err, rules.ErrQuit):
		return Intent{Action: ActionQuit}
	case err != nil:
		return Intent{Action: ActionNone, Err: err}
	}
	return Intent{Action: ActionSelect, Slot: v.MoveToSlot(m)}
}
