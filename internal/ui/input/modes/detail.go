package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/ui/input/types"
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/detail"
	"accessnav/internal/ui/services/navigation"
	"accessnav/internal/ui/services/search"
)

// detailItem adapts a domain item to the navigator
type detailItem struct {
	item domain.Item
}

func (d detailItem) ContentLineCount() int { return len(d.item.Lines) }
func (d detailItem) Buttons() []string { return d.item.Buttons }

// DetailMode is a list whose items open into a header, content lines and a
// row of buttons. Escape inside an item returns to the list; escape on the
// list closes the surface.
type DetailMode struct {
	surface
	*listCore
	detail   *detail.Navigator
	keys     ListKeyMap
	itemID   string // item the navigator was loaded from
	onButton func(item domain.Item, button string)
}

// NewDetailMode creates a closed detail surface over items
func NewDetailMode(name string, items func() []domain.Item, opts Options) *DetailMode {
	return &DetailMode{
		surface:  newSurface(name, opts),
		listCore: newListCore(items, opts),
		detail:   detail.NewNavigator(opts.UIBus),
		keys:     DefaultListKeyMap(),
	}
}

// SetButtonFunction sets what happens when a button is activated
func (m *DetailMode) SetButtonFunction(fn func(item domain.Item, button string)) {
	m.onButton = fn
}

// Keys returns the bindings for help rendering
func (m *DetailMode) Keys() ListKeyMap {
	return m.keys
}

// Position returns the detail cursor
func (m *DetailMode) Position() detail.Position {
	return m.detail.Position()
}

// Cursor returns the focused item index
func (m *DetailMode) Cursor() int {
	return m.nav.GetCursor()
}

// Current returns the focused item
func (m *DetailMode) Current() (domain.Item, bool) {
	return m.current()
}

// Open activates the surface at list level
func (m *DetailMode) Open() {
	m.search.Clear()
	m.detail.GoBackToList()
	m.itemID = ""
	m.nav.Revalidate()
	m.open()
	m.sayf("%s, %s", m.name, m.Announcement())
}

// Refresh re-reads the focused item after its buttons changed. Any
// position inside the item returns to the header.
func (m *DetailMode) Refresh() {
	item, ok := m.current()
	if !ok || !m.detail.InDetail() {
		return
	}
	m.detail.RefreshButtons(detailItem{item})
	m.say(m.Announcement())
}

// BackToList leaves the open item, e.g. after it was removed
func (m *DetailMode) BackToList() {
	m.detail.GoBackToList()
	m.itemID = ""
	m.nav.Revalidate()
}

func (m *DetailMode) HandleKey(ev types.Event) bool {
	if !m.active {
		return false
	}
	m.sync()

	if m.detail.InDetail() {
		if key.Matches(ev, m.keys.Cancel) {
			m.detail.GoBackToList()
			m.itemID = ""
			m.say(m.Announcement())
			return true
		}
		return types.Route(m, ev, m.keys.KeyMap)
	}

	switch {
	case key.Matches(ev, m.keys.Cancel) && m.search.IsActive():
		m.search.Clear()
		m.say("Search cleared")
		return true
	case key.Matches(ev, m.keys.NextMatch):
		m.say(m.searchText(m.search.NextMatch(), m.opts.AnnouncePositions))
		return true
	case key.Matches(ev, m.keys.PrevMatch):
		m.say(m.searchText(m.search.PreviousMatch(), m.opts.AnnouncePositions))
		return true
	}
	return types.Route(m, ev, m.keys.KeyMap)
}

// sync revalidates both levels against the live item list
func (m *DetailMode) sync() {
	m.nav.Revalidate()
	if !m.detail.InDetail() {
		return
	}
	item, ok := m.current()
	if !ok {
		m.detail.GoBackToList()
		m.itemID = ""
		return
	}
	if item.ID != m.itemID {
		m.detail.EnterDetail(detailItem{item})
		m.itemID = item.ID
		return
	}
	m.detail.Sync(detailItem{item})
}

func (m *DetailMode) Up() bool {
	if !m.detail.InDetail() {
		m.nav.Navigate(navigation.DirectionUp)
		m.say(m.Announcement())
		return true
	}
	m.step(m.detail.Up(), false)
	return true
}

func (m *DetailMode) Down() bool {
	if !m.detail.InDetail() {
		m.nav.Navigate(navigation.DirectionDown)
		m.say(m.Announcement())
		return true
	}
	m.step(m.detail.Down(), true)
	return true
}

func (m *DetailMode) Left() bool {
	if !m.detail.InDetail() {
		return false
	}
	m.step(m.detail.PreviousButton(), false)
	return true
}

func (m *DetailMode) Right() bool {
	if !m.detail.InDetail() {
		return m.enter()
	}
	m.step(m.detail.NextButton(), true)
	return true
}

func (m *DetailMode) step(move detail.Move, forward bool) {
	switch move {
	case detail.Moved:
		m.say(m.Announcement())
	case detail.Boundary:
		m.boundary(forward)
	}
}

func (m *DetailMode) enter() bool {
	item, ok := m.current()
	if !ok {
		m.say("Empty")
		return true
	}
	m.search.Clear()
	m.detail.EnterDetail(detailItem{item})
	m.itemID = item.ID
	m.say(m.Announcement())
	return true
}

func (m *DetailMode) Activate() bool {
	if !m.detail.InDetail() {
		return m.enter()
	}
	button, ok := m.detail.CurrentButton()
	if !ok {
		return true
	}
	item, _ := m.current()
	m.publish(eventbus.ItemActivatedEvent{Surface: m.name, ItemID: item.ID, Button: button})
	if m.onButton != nil {
		m.onButton(item, button)
	}
	return true
}

// Cancel closes the surface from any level
func (m *DetailMode) Cancel() {
	if !m.active {
		return
	}
	m.search.Clear()
	m.detail.GoBackToList()
	m.itemID = ""
	m.close(true)
	m.sayf("%s closed", m.name)
}

// Announcement describes the focused row: the item at list level, then the
// header, a content line or a button inside it.
func (m *DetailMode) Announcement() string {
	item, ok := m.current()
	if !ok {
		return "Empty"
	}
	pos := m.detail.Position()
	switch pos.Level {
	case detail.LevelHeader:
		return fmt.Sprintf("%s, %d lines, %d buttons", item.Label, len(item.Lines), len(item.Buttons))
	case detail.LevelContent:
		if pos.Index < len(item.Lines) {
			return item.Lines[pos.Index]
		}
	case detail.LevelButton:
		if pos.Index < len(item.Buttons) {
			text := item.Buttons[pos.Index] + " button"
			if m.opts.AnnouncePositions {
				text += ", " + logic.FormatPosition(pos.Index, len(item.Buttons))
			}
			return text
		}
	}
	return m.describe(m.opts.AnnouncePositions)
}

func (m *DetailMode) TypeChar(r rune) bool {
	if m.detail.InDetail() {
		return true
	}
	if m.count() == 0 {
		m.say("Empty")
		return true
	}
	m.say(m.searchText(m.search.OnChar(r), m.opts.AnnouncePositions))
	return true
}

func (m *DetailMode) Backspace() bool {
	if m.detail.InDetail() {
		return true
	}
	if text := m.searchText(m.search.OnBackspace(), m.opts.AnnouncePositions); text != "" {
		m.say(text)
	}
	return true
}

type detailSnapshot struct {
	active bool
	cursor int
	itemID string
	nav    detail.Snapshot
	search search.Memento
}

func (m *DetailMode) Snapshot() any {
	return detailSnapshot{
		active: m.active,
		cursor: m.nav.GetCursor(),
		itemID: m.itemID,
		nav:    m.detail.Snapshot(),
		search: m.search.Snapshot(),
	}
}

func (m *DetailMode) Restore(snapshot any) {
	s, ok := snapshot.(detailSnapshot)
	if !ok {
		return
	}
	m.active = s.active
	m.nav.MoveToIndex(s.cursor)
	m.itemID = s.itemID
	m.detail.Restore(s.nav)
	m.search.Restore(s.search)
}
