package ui

import "github.com/charmbracelet/bubbles/key"

// HostKeyMap holds the keys the host handles itself. Global keys work while
// a surface is open, the rest only reach the host when no surface is.
type HostKeyMap struct {
	// Global
	Repeat     key.Binding
	WhereAmI   key.Binding
	Transcript key.Binding
	Copy       key.Binding
	Override   key.Binding
	ForceQuit  key.Binding

	// Map
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Walk  key.Binding

	// Surfaces
	Inventory key.Binding
	Details   key.Binding
	Area      key.Binding
	Order     key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultHostKeyMap returns the default host bindings
func DefaultHostKeyMap() HostKeyMap {
	return HostKeyMap{
		Repeat: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "repeat last"),
		),
		WhereAmI: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "where am I"),
		),
		Transcript: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "speech history"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last"),
		),
		Override: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "freeze cursor"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "cursor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "cursor right"),
		),
		Walk: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "walk"),
		),
		Inventory: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inventory"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		Area: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "select area"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle item order"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k HostKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Inventory, k.Details, k.Area, k.Walk, k.Help, k.Quit}
}

func (k HostKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Walk},
		{k.Inventory, k.Details, k.Area, k.Order},
		{k.Repeat, k.WhereAmI, k.Transcript, k.Copy, k.Override},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
