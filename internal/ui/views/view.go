package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"accessnav/internal/domain"
)

// Row is one line of a surface panel
type Row struct {
	Text    string
	Focused bool
	Marked  bool // e.g. a type-ahead match
	Indent  int
}

// Panel is the rendered form of the focused surface
type Panel struct {
	Title  string
	Rows   []Row
	Offset int    // first visible row
	Footer string // e.g. the type-ahead buffer
}

// MapState is what the map needs to draw itself
type MapState struct {
	Bounds  domain.Bounds
	Cursor  domain.Point
	Picked  func(p domain.Point) bool
	Preview func(p domain.Point) bool
	Anchor  *domain.Point
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Map           MapState
	Panel         *Panel // nil when no list-shaped surface is open
	Popup         *Panel // confirmation or quantity dialog
	ShowHelp      bool
	HelpContent   string
	HelpOffset    int
	HelpModel     help.Model
	KeyMap        help.KeyMap
	StatusMessage string
	LastError     string
	LastSpeech    string
	Walking       bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	title := r.styles.Title.Render("accessnav")
	if state.Walking {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, r.styles.Dim.Render("  walking"))
	}
	content.WriteString(title)
	content.WriteString("\n")

	grid := r.renderMap(state.Map)
	if state.Panel != nil {
		panelWidth := state.Width - lipgloss.Width(grid) - 8
		grid = lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", r.renderPanel(*state.Panel, panelWidth, state.Height-8))
	}
	content.WriteString(grid)
	content.WriteString("\n")

	content.WriteString(r.renderSpeech(state.LastSpeech, state.Width-4))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	if state.KeyMap != nil {
		content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.KeyMap)))
	}

	screen := r.styles.Main.Render(content.String())

	switch {
	case state.ShowHelp:
		return r.popupRender.RenderPopupOverlay(screen, r.renderHelp(state), state.Height, state.Width, r.styles.Popup)
	case state.Popup != nil:
		return r.popupRender.RenderPopupOverlay(screen, r.renderPopup(*state.Popup), state.Height, state.Width, r.styles.Popup)
	}
	return screen
}

func (r *Renderer) renderMap(m MapState) string {
	var b strings.Builder
	for z := 0; z < m.Bounds.Height; z++ {
		for x := 0; x < m.Bounds.Width; x++ {
			p := domain.Point{X: x, Z: z}
			switch {
			case p == m.Cursor:
				b.WriteString(r.styles.Cursor.Render("@"))
			case m.Anchor != nil && p == *m.Anchor:
				b.WriteString(r.styles.Anchor.Render("x"))
			case m.Preview != nil && m.Preview(p):
				b.WriteString(r.styles.Preview.Render("+"))
			case m.Picked != nil && m.Picked(p):
				b.WriteString(r.styles.Picked.Render("#"))
			default:
				b.WriteString(r.styles.Cell.Render("·"))
			}
		}
		if z < m.Bounds.Height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) renderPanel(p Panel, width, height int) string {
	if width < 12 {
		width = 12
	}
	if height < 3 {
		height = 3
	}

	var b strings.Builder
	b.WriteString(r.styles.PanelTitle.Render(p.Title))
	b.WriteString("\n")

	end := p.Offset + height
	if end > len(p.Rows) {
		end = len(p.Rows)
	}
	if p.Offset > 0 {
		b.WriteString(r.styles.Scroll.Render("↑ more"))
		b.WriteString("\n")
	}
	for i := p.Offset; i < end; i++ {
		b.WriteString(r.renderRow(p.Rows[i], width))
		b.WriteString("\n")
	}
	if end < len(p.Rows) {
		b.WriteString(r.styles.Scroll.Render("↓ more"))
		b.WriteString("\n")
	}
	if len(p.Rows) == 0 {
		b.WriteString(r.styles.Dim.Render("(empty)"))
		b.WriteString("\n")
	}
	if p.Footer != "" {
		b.WriteString(r.styles.Highlight.Render(p.Footer))
	}
	return r.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) renderRow(row Row, width int) string {
	prefix := "  "
	if row.Focused {
		prefix = "> "
	}
	text := strings.Repeat("  ", row.Indent) + row.Text
	text = runewidth.Truncate(text, width-len(prefix), "…")

	line := prefix + text
	switch {
	case row.Focused:
		return r.styles.HighlightBg.Render(r.styles.Highlight.Render(line))
	case row.Marked:
		return r.styles.Highlight.Render(line)
	}
	return line
}

func (r *Renderer) renderPopup(p Panel) string {
	var b strings.Builder
	b.WriteString(r.styles.PanelTitle.Render(p.Title))
	for _, row := range p.Rows {
		b.WriteString("\n")
		b.WriteString(r.renderRow(row, 60))
	}
	if p.Footer != "" {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Dim.Render(p.Footer))
	}
	return b.String()
}

func (r *Renderer) renderSpeech(text string, width int) string {
	if text == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	return r.styles.Speech.Render("♪ " + runewidth.Truncate(text, width-2, "…"))
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.LastError != "" {
		return r.styles.StatusError.Render(state.LastError)
	}
	at := fmt.Sprintf("Cursor %s", state.Map.Cursor)
	if state.StatusMessage == "" {
		return r.styles.Status.Render(at)
	}
	return r.styles.Status.Render(at + " | " + state.StatusMessage)
}

func (r *Renderer) renderHelp(state ViewState) string {
	lines := strings.Split(state.HelpContent, "\n")
	visible := state.Height - 8
	if visible < 5 {
		visible = 5
	}
	if len(lines) <= visible {
		return state.HelpContent
	}

	offset := state.HelpOffset
	maxOffset := len(lines) - visible
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	window := append([]string(nil), lines[offset:offset+visible]...)
	if offset > 0 {
		window[0] = r.styles.Scroll.Render("↑ (more above)")
	}
	if offset+visible < len(lines) {
		window[len(window)-1] = r.styles.Scroll.Render("↓ (more below)")
	}
	return strings.Join(window, "\n")
}
