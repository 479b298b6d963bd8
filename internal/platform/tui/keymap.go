package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// KeyMapper translates Bubble Tea key messages to semantic actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapGameKey translates a key pressed on a move picker for variant v.
// Arrows move the slot cursor, digits and move letters pick a slot directly,
// Enter/Space confirm, N resets the score and Esc leaves. Q arrives as ActionQuit; callers decide
// whether that finishes the game or the session.
func (km *KeyMapper) MapGameKey(msg tea.KeyMsg, v rules.Variant) core.Intent {
	switch msg.String() {
	case "ctrl+c":
		return core.Intent{Action: core.ActionQuit}
	case "left":
		return core.Intent{Action: core.ActionLeft}
	case "right":
		return core.Intent{Action: core.ActionRight}
	case "up":
		return core.Intent{Action: core.ActionUp}
	case "down":
		return core.Intent{Action: core.ActionDown}
	case "enter", " ":
		return core.Intent{Action: core.ActionConfirm}
	case "esc":
		return core.Intent{Action: core.ActionBack}
	case "n", "N":
		return core.Intent{Action: core.ActionRestart}
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return core.DecodeMoveKey(v, msg.Runes[0])
	}
	return core.Intent{Action: core.ActionNone}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k", "shift+tab": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j", "tab": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

// gameKeyMap is shown in the help bar of the move pickers.
type gameKeyMap struct {
	Move   key.Binding
	Pick   key.Binding
	Play   key.Binding
	Reset  key.Binding
	Finish key.Binding
}

func newGameKeyMap(v rules.Variant, finish string) gameKeyMap {
	letters := ""
	for _, m := range v.Moves() {
		letters += string(m.Key())
	}
	return gameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "choose"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-"+string(rune('0'+v.MaxSlots()))+"/"+letters, "pick"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "reset score"),
		),
		Finish: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", finish),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pick, k.Play, k.Reset, k.Finish}
}

// FullHelp returns key bindings for the full help view.
func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Move, k.Pick, k.Play}, {k.Reset, k.Finish}}
}
