package domain

import "fmt"

// Point is a cell on the host's 2-D map. Z grows "down" the map.
type Point struct {
	X int
	Z int
}

func (p Point) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Z)
}

// Priority controls how an announcement interacts with speech already in progress
type Priority int

const (
	PriorityLow Priority = iota // queued behind the current utterance
	PriorityNormal
	PriorityHigh // interrupts and flushes anything pending
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "normal"
	}
}

// Item is an entry of a list-shaped surface.
// Lines and Buttons are only used by surfaces that expose item details.
type Item struct {
	ID      string
	Label   string
	Lines   []string // content lines shown under the header
	Buttons []string // activatable choices; may differ per item
}

// Bounds is the inclusive extent of the host map
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether p lies on the map
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.Z >= 0 && p.X < b.Width && p.Z < b.Height
}

// Clamp moves p onto the map
func (b Bounds) Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Z < 0 {
		p.Z = 0
	}
	if b.Width > 0 && p.X >= b.Width {
		p.X = b.Width - 1
	}
	if b.Height > 0 && p.Z >= b.Height {
		p.Z = b.Height - 1
	}
	return p
}
