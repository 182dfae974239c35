package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/ui/input/types"
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/navigation"
	"accessnav/internal/ui/services/search"
)

// ListKeyMap adds paging and match cycling to the standard bindings
type ListKeyMap struct {
	types.KeyMap
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
}

// DefaultListKeyMap returns the list bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		KeyMap: types.DefaultKeyMap(),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous match"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.NextMatch, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.NextMatch, k.PrevMatch, k.Activate, k.Cancel},
	}
}

// listCore is an item cursor with type-ahead, shared by list-shaped surfaces
type listCore struct {
	items  func() []domain.Item
	nav    *navigation.Service
	search *search.Service
}

func newListCore(items func() []domain.Item, opts Options) *listCore {
	c := &listCore{
		items:  items,
		nav:    navigation.NewService(opts.UIBus),
		search: search.NewService(opts.UIBus),
	}
	c.nav.SetCountFunction(func() int { return len(c.items()) })
	c.search.SetLabelsFunction(c.labels)
	c.search.SetCursorFunction(c.nav.GetCursor)
	c.search.SetNavigateFunction(c.nav.MoveToIndex)
	return c
}

func (c *listCore) labels() []string {
	items := c.items()
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	return labels
}

func (c *listCore) count() int {
	return len(c.items())
}

func (c *listCore) current() (domain.Item, bool) {
	items := c.items()
	if len(items) == 0 {
		return domain.Item{}, false
	}
	return items[logic.Clamp(c.nav.GetCursor(), len(items))], true
}

// describe renders the item under the cursor, e.g. "Cat, 1 of 5"
func (c *listCore) describe(withPosition bool) string {
	items := c.items()
	if len(items) == 0 {
		return "Empty"
	}
	i := logic.Clamp(c.nav.GetCursor(), len(items))
	if !withPosition {
		return items[i].Label
	}
	return fmt.Sprintf("%s, %s", items[i].Label, logic.FormatPosition(i, len(items)))
}

// searchText renders the outcome of a type-ahead step
func (c *listCore) searchText(res search.Result, withPosition bool) string {
	switch res.Outcome {
	case search.OutcomeMatched:
		return c.describe(withPosition)
	case search.OutcomeNoMatch:
		return fmt.Sprintf("No match for %s", res.Query)
	case search.OutcomeCleared:
		return "Search cleared"
	}
	return ""
}

// ListMode is a flat list of items with wraparound and type-ahead
type ListMode struct {
	surface
	*listCore
	keys       ListKeyMap
	onActivate func(item domain.Item)
}

// NewListMode creates a closed list surface over items
func NewListMode(name string, items func() []domain.Item, opts Options) *ListMode {
	return &ListMode{
		surface:  newSurface(name, opts),
		listCore: newListCore(items, opts),
		keys:     DefaultListKeyMap(),
	}
}

// SetActivateFunction sets what happens when an item is activated
func (m *ListMode) SetActivateFunction(fn func(item domain.Item)) {
	m.onActivate = fn
}

// Keys returns the bindings for help rendering
func (m *ListMode) Keys() ListKeyMap {
	return m.keys
}

// Cursor returns the focused item index
func (m *ListMode) Cursor() int {
	return m.nav.GetCursor()
}

// Current returns the focused item
func (m *ListMode) Current() (domain.Item, bool) {
	return m.current()
}

// Search exposes type-ahead state for rendering
func (m *ListMode) Search() *search.Service {
	return m.search
}

// SetViewportHeight sets how many rows the host shows, used for paging
func (m *ListMode) SetViewportHeight(height int) {
	m.nav.SetViewportHeight(height)
}

// ViewportOffset returns the first visible row
func (m *ListMode) ViewportOffset() int {
	return m.nav.GetViewportOffset()
}

// Open activates the list, keeping the previous cursor if still valid
func (m *ListMode) Open() {
	m.search.Clear()
	m.nav.Revalidate()
	m.open()
	m.sayf("%s, %s", m.name, m.Announcement())
}

func (m *ListMode) HandleKey(ev types.Event) bool {
	if !m.active {
		return false
	}
	m.nav.Revalidate()

	switch {
	case key.Matches(ev, m.keys.Cancel) && m.search.IsActive():
		m.search.Clear()
		m.say("Search cleared")
		return true
	case key.Matches(ev, m.keys.PageUp):
		return m.page(navigation.DirectionPageUp)
	case key.Matches(ev, m.keys.PageDown):
		return m.page(navigation.DirectionPageDown)
	case key.Matches(ev, m.keys.Home):
		return m.page(navigation.DirectionHome)
	case key.Matches(ev, m.keys.End):
		return m.page(navigation.DirectionEnd)
	case key.Matches(ev, m.keys.NextMatch):
		m.say(m.searchText(m.search.NextMatch(), m.opts.AnnouncePositions))
		return true
	case key.Matches(ev, m.keys.PrevMatch):
		m.say(m.searchText(m.search.PreviousMatch(), m.opts.AnnouncePositions))
		return true
	}
	return types.Route(m, ev, m.keys.KeyMap)
}

func (m *ListMode) page(d navigation.Direction) bool {
	if !m.nav.Navigate(d) {
		m.boundary(d == navigation.DirectionPageDown || d == navigation.DirectionEnd)
		return true
	}
	m.say(m.Announcement())
	return true
}

func (m *ListMode) Up() bool {
	m.nav.Navigate(navigation.DirectionUp)
	m.say(m.Announcement())
	return true
}

func (m *ListMode) Down() bool {
	m.nav.Navigate(navigation.DirectionDown)
	m.say(m.Announcement())
	return true
}

func (m *ListMode) Left() bool  { return false }
func (m *ListMode) Right() bool { return false }

func (m *ListMode) Activate() bool {
	item, ok := m.current()
	if !ok {
		m.say("Empty")
		return true
	}
	m.publish(eventbus.ItemActivatedEvent{Surface: m.name, ItemID: item.ID})
	if m.onActivate != nil {
		m.onActivate(item)
	}
	return true
}

// Cancel closes the list and drops any type-ahead
func (m *ListMode) Cancel() {
	if !m.active {
		return
	}
	m.search.Clear()
	m.close(true)
	m.sayf("%s closed", m.name)
}

func (m *ListMode) Announcement() string {
	return m.describe(m.opts.AnnouncePositions)
}

func (m *ListMode) TypeChar(r rune) bool {
	if m.count() == 0 {
		m.say("Empty")
		return true
	}
	m.say(m.searchText(m.search.OnChar(r), m.opts.AnnouncePositions))
	return true
}

func (m *ListMode) Backspace() bool {
	res := m.search.OnBackspace()
	if text := m.searchText(res, m.opts.AnnouncePositions); text != "" {
		m.say(text)
	}
	return true
}

type listSnapshot struct {
	active bool
	cursor int
	search search.Memento
}

func (m *ListMode) Snapshot() any {
	return listSnapshot{active: m.active, cursor: m.nav.GetCursor(), search: m.search.Snapshot()}
}

func (m *ListMode) Restore(snapshot any) {
	if s, ok := snapshot.(listSnapshot); ok {
		m.active = s.active
		m.nav.MoveToIndex(s.cursor)
		m.search.Restore(s.search)
	}
}
