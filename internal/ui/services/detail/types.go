package detail

import "fmt"

// Level is the kind of row the detail cursor is on
type Level int

const (
	LevelList Level = iota // not inside an item
	LevelHeader
	LevelContent
	LevelButton
)

// Position is the detail cursor. Index is meaningful for content lines and buttons.
type Position struct {
	Level Level
	Index int
}

var (
	List   = Position{Level: LevelList}
	Header = Position{Level: LevelHeader}
)

// ContentLine returns the position of content line i
func ContentLine(i int) Position { return Position{Level: LevelContent, Index: i} }

// Button returns the position of button i
func Button(i int) Position { return Position{Level: LevelButton, Index: i} }

func (p Position) String() string {
	switch p.Level {
	case LevelHeader:
		return "header"
	case LevelContent:
		return fmt.Sprintf("line %d", p.Index)
	case LevelButton:
		return fmt.Sprintf("button %d", p.Index)
	default:
		return "list"
	}
}

// Move is the result of a vertical or horizontal step
type Move int

const (
	Moved    Move = iota
	Boundary      // already at the first or last row; nothing changed
	Ignored       // the step does not apply at this level
)

// Item is what the navigator needs from the current item
type Item interface {
	ContentLineCount() int
	Buttons() []string
}

// Event types
type PositionChangedEvent struct {
	Old Position
	New Position
}

// StaticItem is an Item with fixed counts
type StaticItem struct {
	Lines   int
	Actions []string
}

func (s StaticItem) ContentLineCount() int { return s.Lines }
func (s StaticItem) Buttons() []string { return s.Actions }
