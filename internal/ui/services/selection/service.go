package selection

import (
	"errors"
	"sort"

	"accessnav/internal/domain"
	"accessnav/internal/ui/services/events"
)

// ErrWrongMode is returned when an operation belongs to the other selection mode
var ErrWrongMode = errors.New("operation not available in this selection mode")

// Service handles cell selection for one surface: a rectangle state machine
// feeding a persistent committed set, or single-cell toggling of that set.
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new selection service in the given mode
func NewService(bus events.EventBus, mode Mode) *Service {
	return &Service{
		state: &State{
			Mode:      mode,
			Preview:   make(map[domain.Point]struct{}),
			Committed: make(map[domain.Point]struct{}),
		},
		bus: events.OrNull(bus),
	}
}

// Mode returns the active selection mode
func (s *Service) Mode() Mode {
	return s.state.Mode
}

// SetMode switches modes, discarding any rectangle in progress.
// The committed set is shared by both modes and is kept.
func (s *Service) SetMode(mode Mode) {
	if mode == s.state.Mode {
		return
	}
	s.Cancel()
	s.state.Mode = mode
}

// Phase returns the rectangle state
func (s *Service) Phase() Phase {
	switch {
	case s.state.Start == nil:
		return PhaseEmpty
	case len(s.state.Preview) == 0:
		return PhaseAnchored
	default:
		return PhasePreviewing
	}
}

// Anchor returns the start corner, if one is set
func (s *Service) Anchor() (domain.Point, bool) {
	if s.state.Start == nil {
		return domain.Point{}, false
	}
	return *s.state.Start, true
}

// SetStart anchors a rectangle at p. Setting it again moves the anchor.
func (s *Service) SetStart(p domain.Point) error {
	if s.state.Mode != ModeRectangle {
		return ErrWrongMode
	}
	start := p
	s.state.Start = &start
	s.state.End = p
	s.state.Preview = make(map[domain.Point]struct{})
	return nil
}

// UpdatePreview recomputes the preview as the box between the anchor and p.
// It does nothing while no anchor is set.
func (s *Service) UpdatePreview(p domain.Point) int {
	if s.state.Start == nil {
		return 0
	}
	s.state.End = p
	preview := make(map[domain.Point]struct{})
	for _, c := range Rectangle(*s.state.Start, p) {
		preview[c] = struct{}{}
	}
	s.state.Preview = preview

	s.bus.Publish(PreviewChangedEvent{
		Start: *s.state.Start,
		End:   p,
		Cells: len(preview),
	})
	return len(preview)
}

// Commit merges the preview into the committed set and returns to empty.
// Cells already selected stay selected. It returns the number of new cells.
func (s *Service) Commit() int {
	if s.Phase() != PhasePreviewing {
		return 0
	}

	var added []domain.Point
	for c := range s.state.Preview {
		if _, ok := s.state.Committed[c]; !ok {
			s.state.Committed[c] = struct{}{}
			added = append(added, c)
		}
	}
	s.reset()

	sortPoints(added)
	s.bus.Publish(SelectionChangedEvent{
		Added: added,
		Total: len(s.state.Committed),
	})
	return len(added)
}

// Cancel discards any rectangle in progress without touching the committed set
func (s *Service) Cancel() {
	s.reset()
}

// Toggle adds p to the committed set if absent and removes it otherwise.
// It reports whether p is selected afterwards.
func (s *Service) Toggle(p domain.Point) (bool, error) {
	if s.state.Mode != ModeSingle {
		return false, ErrWrongMode
	}

	var ev SelectionChangedEvent
	selected := false
	if _, ok := s.state.Committed[p]; ok {
		delete(s.state.Committed, p)
		ev.Removed = []domain.Point{p}
	} else {
		s.state.Committed[p] = struct{}{}
		ev.Added = []domain.Point{p}
		selected = true
	}
	ev.Total = len(s.state.Committed)
	s.bus.Publish(ev)
	return selected, nil
}

// Clear empties the committed set and discards any preview
func (s *Service) Clear() {
	s.reset()
	s.state.Committed = make(map[domain.Point]struct{})
	s.bus.Publish(SelectionClearedEvent{})
}

// IsSelected checks if a cell is committed
func (s *Service) IsSelected(p domain.Point) bool {
	_, ok := s.state.Committed[p]
	return ok
}

// IsPreviewed checks if a cell is in the live preview
func (s *Service) IsPreviewed(p domain.Point) bool {
	_, ok := s.state.Preview[p]
	return ok
}

// Selected returns the committed cells sorted by row then column
func (s *Service) Selected() []domain.Point {
	return sortedKeys(s.state.Committed)
}

// PreviewCells returns the preview cells sorted by row then column
func (s *Service) PreviewCells() []domain.Point {
	return sortedKeys(s.state.Preview)
}

// GetCount returns the number of committed cells
func (s *Service) GetCount() int {
	return len(s.state.Committed)
}

// Snapshot copies the full state so a caller can roll back a failed operation
func (s *Service) Snapshot() State {
	st := State{
		Mode:      s.state.Mode,
		End:       s.state.End,
		Preview:   cloneSet(s.state.Preview),
		Committed: cloneSet(s.state.Committed),
	}
	if s.state.Start != nil {
		start := *s.state.Start
		st.Start = &start
	}
	return st
}

// Restore replaces the state with one taken by Snapshot
func (s *Service) Restore(st State) {
	restored := st
	restored.Preview = cloneSet(st.Preview)
	restored.Committed = cloneSet(st.Committed)
	if st.Start != nil {
		start := *st.Start
		restored.Start = &start
	}
	s.state = &restored
}

func (s *Service) reset() {
	s.state.Start = nil
	s.state.Preview = make(map[domain.Point]struct{})
}

// Rectangle returns every cell of the axis-aligned box with corners a and b,
// inclusive, ordered by row then column
func Rectangle(a, b domain.Point) []domain.Point {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minZ, maxZ := a.Z, b.Z
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}

	cells := make([]domain.Point, 0, (maxX-minX+1)*(maxZ-minZ+1))
	for z := minZ; z <= maxZ; z++ {
		for x := minX; x <= maxX; x++ {
			cells = append(cells, domain.Point{X: x, Z: z})
		}
	}
	return cells
}

func cloneSet(in map[domain.Point]struct{}) map[domain.Point]struct{} {
	out := make(map[domain.Point]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func sortedKeys(set map[domain.Point]struct{}) []domain.Point {
	out := make([]domain.Point, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortPoints(out)
	return out
}

func sortPoints(points []domain.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Z != points[j].Z {
			return points[i].Z < points[j].Z
		}
		return points[i].X < points[j].X
	})
}
