package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/ui/input/types"
	"accessnav/internal/ui/services/selection"
)

// AreaKeyMap holds the area selection bindings
type AreaKeyMap struct {
	types.KeyMap
	SwitchMode key.Binding
	Clear      key.Binding
	Done       key.Binding
}

// DefaultAreaKeyMap returns the area selection bindings
func DefaultAreaKeyMap() AreaKeyMap {
	km := types.DefaultKeyMap()
	km.Left.SetHelp("←", "west")
	km.Right.SetHelp("→", "east")
	km.Up.SetHelp("↑", "north")
	km.Down.SetHelp("↓", "south")
	km.Activate.SetHelp("enter", "corner/toggle")
	km.Cancel.SetHelp("esc", "drop corner/close")
	return AreaKeyMap{
		KeyMap: km,
		SwitchMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "rectangle/single"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("del", "clear selection"),
		),
		Done: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "finish"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k AreaKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.SwitchMode, k.Done, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k AreaKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Activate, k.SwitchMode, k.Clear, k.Done, k.Cancel},
	}
}

// AreaSelectMode picks map cells, either as rectangles between two corners
// or one cell at a time. It moves the host cursor through ctx.
type AreaSelectMode struct {
	surface
	keys   AreaKeyMap
	ctx    types.Context
	sel    *selection.Service
	onDone func(cells []domain.Point)
}

// NewAreaSelectMode creates a closed area selection surface
func NewAreaSelectMode(name string, ctx types.Context, opts Options) *AreaSelectMode {
	return &AreaSelectMode{
		surface: newSurface(name, opts),
		keys:    DefaultAreaKeyMap(),
		ctx:     ctx,
		sel:     selection.NewService(opts.UIBus, selection.ModeRectangle),
	}
}

// SetDoneFunction sets what receives the selection when the surface closes
func (m *AreaSelectMode) SetDoneFunction(fn func(cells []domain.Point)) {
	m.onDone = fn
}

// Keys returns the bindings for help rendering
func (m *AreaSelectMode) Keys() AreaKeyMap {
	return m.keys
}

// Selection exposes selection state for rendering
func (m *AreaSelectMode) Selection() *selection.Service {
	return m.sel
}

// Open activates the surface. The previous selection is kept.
func (m *AreaSelectMode) Open() {
	m.sel.Cancel()
	m.open()
	m.sayf("%s, %s mode, %s", m.name, m.sel.Mode(), m.Announcement())
}

func (m *AreaSelectMode) HandleKey(ev types.Event) bool {
	if !m.active {
		return false
	}
	switch {
	case key.Matches(ev, m.keys.Cancel) && m.sel.Phase() != selection.PhaseEmpty:
		m.sel.Cancel()
		m.say("Corner dropped")
		return true
	case key.Matches(ev, m.keys.SwitchMode):
		next := selection.ModeSingle
		if m.sel.Mode() == selection.ModeSingle {
			next = selection.ModeRectangle
		}
		m.sel.SetMode(next)
		m.sayf("%s mode", next)
		return true
	case key.Matches(ev, m.keys.Clear):
		m.sel.Clear()
		m.say("Selection cleared")
		return true
	case key.Matches(ev, m.keys.Done):
		m.finish(false)
		return true
	}
	return types.Route(m, ev, m.keys.KeyMap)
}

func (m *AreaSelectMode) Up() bool { return m.move(0, -1) }
func (m *AreaSelectMode) Down() bool { return m.move(0, 1) }
func (m *AreaSelectMode) Left() bool { return m.move(-1, 0) }
func (m *AreaSelectMode) Right() bool { return m.move(1, 0) }

func (m *AreaSelectMode) move(dx, dz int) bool {
	from := m.ctx.CursorPosition()
	target := domain.Point{X: from.X + dx, Z: from.Z + dz}
	if !m.ctx.Bounds().Contains(target) {
		m.boundary(dx > 0 || dz > 0)
		return true
	}
	m.ctx.SetCursorPosition(target)
	at := m.ctx.CursorPosition()

	if _, anchored := m.sel.Anchor(); anchored {
		n := m.sel.UpdatePreview(at)
		m.sayf("%s, %d cells", at, n)
		return true
	}
	m.say(m.Announcement())
	return true
}

// Activate sets a corner, closes a rectangle or toggles one cell
func (m *AreaSelectMode) Activate() bool {
	at := m.ctx.CursorPosition()

	if m.sel.Mode() == selection.ModeSingle {
		on, err := m.sel.Toggle(at)
		if err != nil {
			m.interrupt(err.Error())
			return true
		}
		if on {
			m.sayf("Selected %s", at)
		} else {
			m.sayf("Deselected %s", at)
		}
		return true
	}

	if m.sel.Phase() == selection.PhaseEmpty {
		if err := m.sel.SetStart(at); err != nil {
			m.interrupt(err.Error())
			return true
		}
		m.sayf("Corner at %s", at)
		return true
	}

	if m.sel.Phase() == selection.PhaseAnchored {
		// both corners on the same cell
		m.sel.UpdatePreview(at)
	}
	added := m.sel.Commit()
	m.sayf("Selected %d new cells, %d total", added, m.sel.GetCount())
	return true
}

// Cancel drops any pending corner and closes, keeping committed cells
func (m *AreaSelectMode) Cancel() {
	if !m.active {
		return
	}
	m.finish(true)
}

func (m *AreaSelectMode) finish(cancelled bool) {
	m.sel.Cancel()
	cells := m.sel.Selected()
	m.close(cancelled)
	m.publish(eventbus.SelectionCommittedEvent{Surface: m.name, Cells: cells})
	m.sayf("%s closed, %d cells selected", m.name, len(cells))
	if m.onDone != nil {
		m.onDone(cells)
	}
}

// Announcement reads the cursor cell and whether it is selected
func (m *AreaSelectMode) Announcement() string {
	at := m.ctx.CursorPosition()
	if m.sel.IsSelected(at) {
		return fmt.Sprintf("%s, selected", at)
	}
	return at.String()
}

func (m *AreaSelectMode) Snapshot() any {
	return areaSnapshot{active: m.active, sel: m.sel.Snapshot(), cursor: m.ctx.CursorPosition()}
}

func (m *AreaSelectMode) Restore(snapshot any) {
	if s, ok := snapshot.(areaSnapshot); ok {
		m.active = s.active
		m.sel.Restore(s.sel)
		m.ctx.SetCursorPosition(s.cursor)
	}
}

type areaSnapshot struct {
	active bool
	sel    selection.State
	cursor domain.Point
}
