package selection

import "accessnav/internal/domain"

// Mode is how a surface adds cells to its selection.
// One surface instance uses one mode at a time.
type Mode int

const (
	ModeRectangle Mode = iota // two corners select a box
	ModeSingle                // each cell is toggled individually
)

func (m Mode) String() string {
	if m == ModeSingle {
		return "single tile"
	}
	return "rectangle"
}

// Phase is where the rectangle state machine is
type Phase int

const (
	PhaseEmpty      Phase = iota // no corner set
	PhaseAnchored                // start corner set, no preview yet
	PhasePreviewing              // preview cells computed
)

func (p Phase) String() string {
	switch p {
	case PhaseAnchored:
		return "anchored"
	case PhasePreviewing:
		return "previewing"
	default:
		return "empty"
	}
}

// State holds selection state
type State struct {
	Mode      Mode
	Start     *domain.Point
	End       domain.Point
	Preview   map[domain.Point]struct{}
	Committed map[domain.Point]struct{}
}

// Event types
type SelectionChangedEvent struct {
	Added   []domain.Point
	Removed []domain.Point
	Total   int
}

type PreviewChangedEvent struct {
	Start domain.Point
	End   domain.Point
	Cells int
}

type SelectionClearedEvent struct{}
