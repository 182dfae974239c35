package modes

import (
	"github.com/charmbracelet/bubbles/key"

	"accessnav/internal/ui/input/types"
)

// ConfirmKeyMap holds the yes/no bindings
type ConfirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
}

// DefaultConfirmKeyMap returns the confirmation bindings
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "no"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", "tab"),
			key.WithHelp("←/→", "switch"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k ConfirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Toggle}
}

// FullHelp implements help.KeyMap
func (k ConfirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ConfirmMode asks a yes/no question on behalf of another surface and hands
// focus back to it when answered.
type ConfirmMode struct {
	surface
	keys     ConfirmKeyMap
	question string
	yes      bool // focused choice
	opener   types.Navigable
	onYes    func()
	onNo     func()
}

// NewConfirmMode creates a closed confirmation surface
func NewConfirmMode(name string, opts Options) *ConfirmMode {
	return &ConfirmMode{
		surface: newSurface(name, opts),
		keys:    DefaultConfirmKeyMap(),
	}
}

// Keys returns the bindings for help rendering
func (m *ConfirmMode) Keys() ConfirmKeyMap {
	return m.keys
}

// Question returns the pending question
func (m *ConfirmMode) Question() string {
	return m.question
}

// YesFocused reports whether "Yes" is the focused choice
func (m *ConfirmMode) YesFocused() bool {
	return m.yes
}

// Ask opens the surface. opener may be nil; when set and still active after
// the answer, its current focus is announced again. Asking while a question
// is pending replaces it and counts as "no" for the old one.
func (m *ConfirmMode) Ask(question string, opener types.Navigable, onYes, onNo func()) {
	if m.active {
		m.finish(false)
	}
	m.question = question
	m.opener = opener
	m.onYes = onYes
	m.onNo = onNo
	m.yes = false
	m.open()
	m.interrupt(question + " No")
}

func (m *ConfirmMode) HandleKey(ev types.Event) bool {
	if !m.active {
		return false
	}
	switch {
	case key.Matches(ev, m.keys.Yes):
		m.finish(true)
		return true
	case key.Matches(ev, m.keys.No):
		m.finish(false)
		return true
	case key.Matches(ev, m.keys.Toggle):
		m.yes = !m.yes
		m.say(m.Announcement())
		return true
	case ev.Key == types.KeyEnter:
		m.finish(m.yes)
		return true
	}
	return false
}

// Cancel answers "no"
func (m *ConfirmMode) Cancel() {
	if m.active {
		m.finish(false)
	}
}

func (m *ConfirmMode) Announcement() string {
	if m.yes {
		return "Yes"
	}
	return "No"
}

// finish closes the surface before running the callback, so the callback may
// ask another question or close the opener.
func (m *ConfirmMode) finish(yes bool) {
	callback := m.onNo
	if yes {
		callback = m.onYes
	}
	opener := m.opener
	m.opener, m.onYes, m.onNo = nil, nil, nil
	m.close(!yes)

	if callback != nil {
		callback()
	}
	if !m.active && opener != nil && opener.IsActive() {
		m.say(opener.Announcement())
	}
}
