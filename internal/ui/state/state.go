package state

import (
	"accessnav/internal/domain"
)

// AppState contains all the host state that is not owned by a surface
type AppState struct {
	// World data
	Items  []domain.Item // items offered by the list surface
	Bounds domain.Bounds // size of the roamable map

	// Background cursor
	Cursor domain.Point
	Frame  uint64 // increments once per tick

	// Selection results
	Picked      map[domain.Point]struct{} // cells committed by the area selector
	LastCommand string                    // last activated item/button

	// UI state
	Width            int
	Height           int
	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
	LastError        string
}

// NewAppState creates a new application state
func NewAppState(items []domain.Item, bounds domain.Bounds) *AppState {
	return &AppState{
		Items:  items,
		Bounds: bounds,
		Picked: make(map[domain.Point]struct{}),
	}
}

// ItemByID returns the item with the given id
func (s *AppState) ItemByID(id string) (domain.Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// Labels returns the item labels in display order
func (s *AppState) Labels() []string {
	labels := make([]string, len(s.Items))
	for i, it := range s.Items {
		labels[i] = it.Label
	}
	return labels
}

// SetPicked replaces the set of cells committed by the area selector
func (s *AppState) SetPicked(cells []domain.Point) {
	s.Picked = make(map[domain.Point]struct{}, len(cells))
	for _, c := range cells {
		s.Picked[c] = struct{}{}
	}
}

// IsPicked reports whether a cell has been committed
func (s *AppState) IsPicked(p domain.Point) bool {
	_, ok := s.Picked[p]
	return ok
}

// SetStatus sets the status bar message and clears any error
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.LastError = ""
}

// SetError sets the status bar error
func (s *AppState) SetError(msg string) {
	s.LastError = msg
}
