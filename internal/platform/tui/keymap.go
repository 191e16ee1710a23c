package tui

import tea "github.com/charmbracelet/bubbletea"

// MenuAction represents a navigation action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// KeyMapper translates Bubble Tea key messages to navigation actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToMenuAction translates a key to a navigation action.
// Text-entry screens bypass this so typing is never swallowed.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k": // vim-style k for up
		return MenuActionUp
	case "down", "j": // vim-style j for down
		return MenuActionDown
	case "left", "h":
		return MenuActionLeft
	case "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
