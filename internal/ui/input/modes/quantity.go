package modes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	"accessnav/internal/ui/input/types"
)

// QuantityKeyMap holds the quantity adjustment bindings
type QuantityKeyMap struct {
	types.KeyMap
	BigUp   key.Binding
	BigDown key.Binding
}

// DefaultQuantityKeyMap returns the quantity bindings
func DefaultQuantityKeyMap() QuantityKeyMap {
	km := types.DefaultKeyMap()
	km.Up.SetHelp("↑", "more")
	km.Down.SetHelp("↓", "less")
	km.Activate.SetHelp("enter", "accept")
	km.Activate.SetKeys("enter")
	return QuantityKeyMap{
		KeyMap: km,
		BigUp: key.NewBinding(
			key.WithKeys("shift+up", "pgup"),
			key.WithHelp("shift+↑", "ten more"),
		),
		BigDown: key.NewBinding(
			key.WithKeys("shift+down", "pgdown"),
			key.WithHelp("shift+↓", "ten less"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k QuantityKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.BigUp, k.BigDown, k.Activate, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k QuantityKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

const bigStep = 10

// QuantityMode edits a bounded number, either with the arrows or by typing
// digits. It is opened from another surface and returns to it.
type QuantityMode struct {
	surface
	keys     QuantityKeyMap
	input    textinput.Model
	label    string
	value    int
	min      int
	max      int
	opener   types.Navigable
	onCommit func(value int)
}

// NewQuantityMode creates a closed quantity surface
func NewQuantityMode(name string, opts Options) *QuantityMode {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 9
	return &QuantityMode{
		surface: newSurface(name, opts),
		keys:    DefaultQuantityKeyMap(),
		input:   ti,
	}
}

// Keys returns the bindings for help rendering
func (m *QuantityMode) Keys() QuantityKeyMap {
	return m.keys
}

// Value returns the current value
func (m *QuantityMode) Value() int {
	return m.value
}

// Label returns what is being counted
func (m *QuantityMode) Label() string {
	return m.label
}

// InputView renders the number field
func (m *QuantityMode) InputView() string {
	return m.input.View()
}

// Start opens the surface with value clamped to [lo, hi]
func (m *QuantityMode) Start(label string, value, lo, hi int, opener types.Navigable, onCommit func(int)) {
	if hi < lo {
		lo, hi = hi, lo
	}
	m.label = label
	m.min = lo
	m.max = hi
	m.opener = opener
	m.onCommit = onCommit
	m.set(value)
	m.input.Focus()
	m.open()
	m.say(m.Announcement())
}

func (m *QuantityMode) HandleKey(ev types.Event) bool {
	if !m.active {
		return false
	}
	switch {
	case key.Matches(ev, m.keys.BigUp):
		m.adjust(bigStep)
		return true
	case key.Matches(ev, m.keys.BigDown):
		m.adjust(-bigStep)
		return true
	case ev.IsChar() && ev.Rune >= '0' && ev.Rune <= '9',
		ev.Key == types.KeyBackspace, ev.Key == types.KeyDelete,
		ev.Key == types.KeyHome, ev.Key == types.KeyEnd:
		m.edit(ev)
		return true
	}
	return types.Route(m, ev, m.keys.KeyMap)
}

func (m *QuantityMode) Up() bool {
	m.adjust(1)
	return true
}

func (m *QuantityMode) Down() bool {
	m.adjust(-1)
	return true
}

// Left and Right move within the typed number
func (m *QuantityMode) Left() bool {
	m.edit(types.KeyPress(types.KeyLeft))
	return true
}

func (m *QuantityMode) Right() bool {
	m.edit(types.KeyPress(types.KeyRight))
	return true
}

// Activate commits the value and closes
func (m *QuantityMode) Activate() bool {
	m.sync()
	value, fn := m.value, m.onCommit
	m.finish(false)
	m.sayf("%s set to %d", m.label, value)
	if fn != nil {
		fn(value)
	}
	m.reannounceOpener()
	return true
}

// Cancel closes without committing
func (m *QuantityMode) Cancel() {
	if !m.active {
		return
	}
	m.finish(true)
	m.say("Cancelled")
	m.reannounceOpener()
}

func (m *QuantityMode) Announcement() string {
	return fmt.Sprintf("%s %d", m.label, m.value)
}

type quantitySnapshot struct {
	active   bool
	focused  bool
	label    string
	value    int
	min      int
	max      int
	text     string
	opener   types.Navigable
	onCommit func(value int)
}

func (m *QuantityMode) Snapshot() any {
	return quantitySnapshot{
		active:   m.active,
		focused:  m.input.Focused(),
		label:    m.label,
		value:    m.value,
		min:      m.min,
		max:      m.max,
		text:     m.input.Value(),
		opener:   m.opener,
		onCommit: m.onCommit,
	}
}

func (m *QuantityMode) Restore(snapshot any) {
	s, ok := snapshot.(quantitySnapshot)
	if !ok {
		return
	}
	m.active = s.active
	m.label = s.label
	m.value = s.value
	m.min = s.min
	m.max = s.max
	m.opener = s.opener
	m.onCommit = s.onCommit
	m.input.SetValue(s.text)
	m.input.CursorEnd()
	if s.focused {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *QuantityMode) adjust(delta int) {
	m.sync()
	old := m.value
	m.set(m.value + delta)
	if m.value == old {
		m.boundary(delta > 0)
		return
	}
	m.say(strconv.Itoa(m.value))
}

// edit feeds a key to the text field and re-reads the number from it
func (m *QuantityMode) edit(ev types.Event) {
	m.input, _ = m.input.Update(types.ToKeyMsg(ev))
	if ev.IsChar() || ev.Key == types.KeyBackspace || ev.Key == types.KeyDelete {
		text := m.input.Value()
		if text == "" {
			m.say("Blank")
			return
		}
		m.say(text)
	}
}

// sync parses the typed text, clamping it; blank text keeps the last value
func (m *QuantityMode) sync() {
	n, err := strconv.Atoi(m.input.Value())
	if err != nil {
		m.set(m.value)
		return
	}
	m.set(n)
}

func (m *QuantityMode) set(value int) {
	if value < m.min {
		value = m.min
	}
	if value > m.max {
		value = m.max
	}
	m.value = value
	m.input.SetValue(strconv.Itoa(value))
	m.input.CursorEnd()
}

func (m *QuantityMode) finish(cancelled bool) {
	m.input.Blur()
	m.onCommit = nil
	m.close(cancelled)
}

func (m *QuantityMode) reannounceOpener() {
	opener := m.opener
	m.opener = nil
	if !m.active && opener != nil && opener.IsActive() {
		m.say(opener.Announcement())
	}
}
