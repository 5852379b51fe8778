package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridloop/internal/core"
)

// KeyMap translates Bubble Tea key messages to logical keys.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Esc   key.Binding
	Enter key.Binding
	Space key.Binding
	Back  key.Binding
	Tab   key.Binding
}

// DefaultKeyMap returns the standard bindings. Letters are not listed:
// every a-z key maps to its own logical key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Up:    key.NewBinding(key.WithKeys("up")),
		Down:  key.NewBinding(key.WithKeys("down")),
		Left:  key.NewBinding(key.WithKeys("left")),
		Right: key.NewBinding(key.WithKeys("right")),
		Esc:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit")),
		Enter: key.NewBinding(key.WithKeys("enter")),
		Space: key.NewBinding(key.WithKeys(" ", "space")),
		Back:  key.NewBinding(key.WithKeys("backspace")),
		Tab:   key.NewBinding(key.WithKeys("tab")),
	}
}

// Translate maps a key message to a logical key. isQuit reports the
// interrupt binding, which never maps to a key.
func (km KeyMap) Translate(msg tea.KeyMsg) (k core.Key, isQuit bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.KeyNone, true
	case key.Matches(msg, km.Up):
		return core.KeyUp, false
	case key.Matches(msg, km.Down):
		return core.KeyDown, false
	case key.Matches(msg, km.Left):
		return core.KeyLeft, false
	case key.Matches(msg, km.Right):
		return core.KeyRight, false
	case key.Matches(msg, km.Esc):
		return core.KeyEscape, false
	case key.Matches(msg, km.Enter):
		return core.KeyEnter, false
	case key.Matches(msg, km.Space):
		return core.KeySpace, false
	case key.Matches(msg, km.Back):
		return core.KeyBackspace, false
	case key.Matches(msg, km.Tab):
		return core.KeyTab, false
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return core.LetterKey(msg.Runes[0]), false
	}
	return core.KeyNone, false
}
