package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Speech      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Popup       lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	HighlightBg lipgloss.Style
	Cell        lipgloss.Style
	Cursor      lipgloss.Style
	Picked      lipgloss.Style
	Preview     lipgloss.Style
	Anchor      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Speech:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cell:        lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Picked:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Preview:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Anchor:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}
