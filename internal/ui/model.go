package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"accessnav/internal/config"
	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/ui/handlers"
	"accessnav/internal/ui/input/modes"
	"accessnav/internal/ui/input/types"
	"accessnav/internal/ui/services/detail"
	"accessnav/internal/ui/state"
	"accessnav/internal/ui/views"
)

// tickInterval is the length of one frame
const tickInterval = 80 * time.Millisecond

// Model is the Bubble Tea host around a Session
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	session *Session
	state   *state.AppState // owned by the session
	events  *handlers.EventHandler

	help         help.Model
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps
	inPagerMode  bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	session, err := NewSession(cfg, bus)
	if err != nil {
		return nil, err
	}
	return &Model{
		bus:          bus,
		config:       cfg,
		session:      session,
		state:        session.State(),
		events:       handlers.NewEventHandler(session.State(), clearStatusAfter),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(nil),
	}, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Session returns the input core behind the model
func (m *Model) Session() *Session {
	return m.session
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.session.speak("accessnav ready. Press i for inventory, d for details, s to select an area, question mark for help.", domain.PriorityNormal)
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.session.inventory.SetViewportHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.ShowHelp {
		return m, m.handleHelpKey(msg)
	}

	ev, ok := types.FromKeyMsg(msg)
	if !ok {
		return m, nil
	}

	status := m.state.StatusMessage
	cmd := m.runCommand(m.session.Press(ev))
	if m.state.StatusMessage != "" && m.state.StatusMessage != status {
		cmd = tea.Batch(cmd, clearStatusAfter(3*time.Second))
	}
	return m, cmd
}

func (m *Model) runCommand(c Command) tea.Cmd {
	switch c {
	case CommandQuit:
		return func() tea.Msg { return quitMsg{} }
	case CommandHelp:
		m.state.ShowHelp = true
		m.state.HelpScrollOffset = 0
		m.session.speak("Help, press escape to close", domain.PriorityNormal)
	case CommandTranscript:
		return m.showTranscript()
	case CommandCopy:
		text, ok := m.session.LastAnnouncement()
		if !ok {
			m.session.speak("Nothing to copy", domain.PriorityNormal)
			return nil
		}
		return copyToClipboard(text)
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "?", "q":
		m.state.ShowHelp = false
		m.state.HelpScrollOffset = 0
		m.session.speak("Help closed", domain.PriorityNormal)
	case "up", "k":
		if m.state.HelpScrollOffset > 0 {
			m.state.HelpScrollOffset--
		}
	case "down", "j":
		m.state.HelpScrollOffset++
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

// showTranscript returns a command that shows the speech history in ov
func (m *Model) showTranscript() tea.Cmd {
	if m.program == nil {
		m.state.SetError("pager unavailable")
		return nil
	}
	content := renderTranscript(m.session.History())
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.events.HandleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		m.session.Tick()
		return m, tick()

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Transcript pager failed: %v", msg.err)
			m.state.SetError(fmt.Sprintf("pager: %v", msg.err))
			return m, clearStatusAfter(3 * time.Second)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("Clipboard write failed: %v", msg.err)
			m.session.speak("Copy failed", domain.PriorityHigh)
			return m, nil
		}
		m.state.SetStatus("Copied: " + msg.text)
		m.session.speak("Copied", domain.PriorityNormal)
		return m, clearStatusAfter(3 * time.Second)

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case clearStatusMsg:
		m.state.StatusMessage = ""
		m.state.LastError = ""
		return m, nil

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	s := m.session
	vs := views.ViewState{
		Width:         m.state.Width,
		Height:        m.state.Height,
		HelpModel:     m.help,
		KeyMap:        m.keyMap(),
		ShowHelp:      m.state.ShowHelp,
		HelpOffset:    m.state.HelpScrollOffset,
		StatusMessage: m.state.StatusMessage,
		LastError:     m.state.LastError,
		Walking:       s.Walking(),
		Map: views.MapState{
			Bounds: m.state.Bounds,
			Cursor: m.state.Cursor,
			Picked: m.state.IsPicked,
		},
	}
	if u, ok := s.Speaking(); ok {
		vs.LastSpeech = u.Text
	}
	if vs.ShowHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent(m.helpSections())
	}

	if s.area.IsActive() {
		sel := s.area.Selection()
		vs.Map.Picked = sel.IsSelected
		vs.Map.Preview = sel.IsPreviewed
		if anchor, ok := sel.Anchor(); ok {
			vs.Map.Anchor = &anchor
		}
	}

	switch {
	case s.inventory.IsActive():
		vs.Panel = m.listPanel()
	case s.details.IsActive():
		vs.Panel = m.detailPanel()
	}

	switch {
	case s.confirm.IsActive():
		yes, no := "  Yes  ", "[ No ]"
		if s.confirm.YesFocused() {
			yes, no = "[ Yes ]", "  No  "
		}
		vs.Popup = &views.Panel{
			Title:  s.confirm.Name(),
			Rows:   []views.Row{{Text: s.confirm.Question()}, {Text: ""}, {Text: yes + "  " + no}},
			Footer: "y yes • n no • tab switch",
		}
	case s.quantity.IsActive():
		vs.Popup = &views.Panel{
			Title:  s.quantity.Label(),
			Rows:   []views.Row{{Text: s.quantity.InputView()}},
			Footer: "↑/↓ ±1 • shift ±10 • enter set • esc cancel",
		}
	}
	return vs
}

func (m *Model) listPanel() *views.Panel {
	list := m.session.inventory
	panel := &views.Panel{Title: list.Name(), Offset: list.ViewportOffset()}
	for i, it := range m.state.Items {
		panel.Rows = append(panel.Rows, views.Row{
			Text:    it.Label,
			Focused: i == list.Cursor(),
			Marked:  list.Search().IsMatch(i),
		})
	}
	if list.Search().IsActive() {
		panel.Footer = "Search: " + list.Search().GetQuery()
	}
	return panel
}

func (m *Model) detailPanel() *views.Panel {
	d := m.session.details
	pos := d.Position()
	panel := &views.Panel{Title: d.Name()}
	for i, it := range m.state.Items {
		open := i == d.Cursor() && pos.Level != detail.LevelList
		panel.Rows = append(panel.Rows, views.Row{
			Text:    it.Label,
			Focused: i == d.Cursor() && (pos.Level == detail.LevelList || pos.Level == detail.LevelHeader),
		})
		if !open {
			continue
		}
		for j, line := range it.Lines {
			panel.Rows = append(panel.Rows, views.Row{
				Text:    line,
				Indent:  1,
				Focused: pos == detail.ContentLine(j),
			})
		}
		for j, b := range it.Buttons {
			panel.Rows = append(panel.Rows, views.Row{
				Text:    "[" + b + "]",
				Indent:  1,
				Focused: pos == detail.Button(j),
			})
		}
	}
	return panel
}

// keyMap returns the bindings of the focused surface, or the host's
func (m *Model) keyMap() help.KeyMap {
	top, ok := m.session.Top()
	if !ok {
		return m.session.Keys()
	}
	switch s := top.(type) {
	case *modes.ListMode:
		return s.Keys()
	case *modes.DetailMode:
		return s.Keys()
	case *modes.AreaSelectMode:
		return s.Keys()
	case *modes.ConfirmMode:
		return s.Keys()
	case *modes.QuantityMode:
		return s.Keys()
	}
	return m.session.Keys()
}

func (m *Model) helpSections() []helpSection {
	s := m.session
	return []helpSection{
		{title: "Map", bindings: flatten(s.keys.FullHelp()[:2])},
		{title: "Anywhere", bindings: flatten(s.keys.FullHelp()[2:])},
		{title: "Lists", bindings: flatten(s.inventory.Keys().FullHelp())},
		{title: "Area selection", bindings: flatten(s.area.Keys().FullHelp())},
		{title: "Questions", bindings: flatten(s.confirm.Keys().FullHelp())},
		{title: "Amounts", bindings: flatten(s.quantity.Keys().FullHelp())},
	}
}

func flatten(groups [][]key.Binding) []key.Binding {
	var out []key.Binding
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
