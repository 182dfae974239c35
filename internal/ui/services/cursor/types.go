package cursor

import "accessnav/internal/domain"

// Step is one movement of the roaming cursor
type Step struct {
	DX int
	DZ int
}

// Zero reports whether the step moves nowhere
func (s Step) Zero() bool {
	return s.DX == 0 && s.DZ == 0
}

var (
	North = Step{DZ: -1}
	South = Step{DZ: 1}
	West  = Step{DX: -1}
	East  = Step{DX: 1}
)

// Outcome is what a tick did
type Outcome int

const (
	Moved      Outcome = iota
	Edge               // the step would leave the map
	Suppressed         // a modal surface owns input
	Repeated           // this frame already moved
	Idle               // nothing to do
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Edge:
		return "edge"
	case Suppressed:
		return "suppressed"
	case Repeated:
		return "repeated"
	default:
		return "idle"
	}
}

// Host is where the cursor lives
type Host interface {
	CursorPosition() domain.Point
	SetCursorPosition(p domain.Point)
	Bounds() domain.Bounds
}

// Suppression reports whether background input must stand down
type Suppression interface {
	IsSuppressed() bool
}

// Event types
type CursorMovedEvent struct {
	Old domain.Point
	New domain.Point
}
