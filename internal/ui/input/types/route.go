package types

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds the keys every navigable surface understands
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the standard surface bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous choice"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next choice"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "activate"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Activate, k.Cancel},
	}
}

// Route applies the standard bindings to a navigable surface. Printable
// characters and backspace go to type-ahead when the surface supports it.
// Surfaces handle modified keys they care about before calling Route.
func Route(s Navigable, ev Event, km KeyMap) bool {
	switch {
	case key.Matches(ev, km.Cancel):
		s.Cancel()
		return true
	case key.Matches(ev, km.Up):
		return s.Up()
	case key.Matches(ev, km.Down):
		return s.Down()
	case key.Matches(ev, km.Left):
		return s.Left()
	case key.Matches(ev, km.Right):
		return s.Right()
	case key.Matches(ev, km.Activate):
		return s.Activate()
	}

	if ta, ok := s.(TypeAhead); ok {
		if ev.IsChar() {
			return ta.TypeChar(ev.Rune)
		}
		if ev.Key == KeyBackspace && ev.Mods == (Modifiers{}) {
			return ta.Backspace()
		}
	}
	return false
}

// ToKeyMsg converts an event back into a bubbletea key message so that
// bubbles components can consume it.
func ToKeyMsg(ev Event) tea.KeyMsg {
	switch ev.Key {
	case KeyRune:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: ev.Mods.Alt}
	case KeySpace:
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: ev.Mods.Alt}
	case KeyBackspace:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case KeyDelete:
		return tea.KeyMsg{Type: tea.KeyDelete}
	case KeyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case KeyRight:
		return tea.KeyMsg{Type: tea.KeyRight}
	case KeyHome:
		return tea.KeyMsg{Type: tea.KeyHome}
	case KeyEnd:
		return tea.KeyMsg{Type: tea.KeyEnd}
	case KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case KeyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}
