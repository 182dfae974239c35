package detail

import (
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/events"
)

// Navigator walks header, content lines and action buttons of one item.
// Vertical order is Header, ContentLine(0..n-1), Button(0..m-1); buttons are
// also traversed horizontally with wraparound.
type Navigator struct {
	pos     Position
	lines   int
	buttons []string
	bus     events.EventBus
}

// NewNavigator creates a navigator at list level
func NewNavigator(bus events.EventBus) *Navigator {
	return &Navigator{bus: events.OrNull(bus)}
}

// Position returns the current detail position
func (n *Navigator) Position() Position {
	return n.pos
}

// InDetail reports whether the cursor is inside an item
func (n *Navigator) InDetail() bool {
	return n.pos.Level != LevelList
}

// CurrentButton returns the label of the focused button
func (n *Navigator) CurrentButton() (string, bool) {
	if n.pos.Level != LevelButton || n.pos.Index >= len(n.buttons) {
		return "", false
	}
	return n.buttons[n.pos.Index], true
}

// ButtonCount returns the number of buttons of the current item
func (n *Navigator) ButtonCount() int {
	return len(n.buttons)
}

// EnterDetail moves from the list into item's header
func (n *Navigator) EnterDetail(item Item) {
	n.load(item)
	n.setPos(Header)
}

// GoBackToList leaves the item
func (n *Navigator) GoBackToList() {
	n.setPos(List)
	n.lines = 0
	n.buttons = nil
}

// RefreshButtons re-reads the item. Button sets depend on the item, so any
// position inside the item is reset to the header.
func (n *Navigator) RefreshButtons(item Item) {
	n.load(item)
	if n.InDetail() {
		n.setPos(Header)
	}
}

// Sync re-reads the item after it changed underneath the cursor.
// The position is kept when still valid, otherwise reset to the header.
func (n *Navigator) Sync(item Item) {
	n.load(item)
	n.revalidate()
}

// Snapshot is a copy of the navigator state
type Snapshot struct {
	pos     Position
	lines   int
	buttons []string
}

// Snapshot copies the navigator state
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{pos: n.pos, lines: n.lines, buttons: append([]string(nil), n.buttons...)}
}

// Restore replaces the navigator state with a snapshot, without publishing
func (n *Navigator) Restore(s Snapshot) {
	n.pos = s.pos
	n.lines = s.lines
	n.buttons = append([]string(nil), s.buttons...)
}

// Down moves one row toward the last button
func (n *Navigator) Down() Move {
	n.revalidate()
	switch n.pos.Level {
	case LevelHeader:
		switch {
		case n.lines > 0:
			return n.setPos(ContentLine(0))
		case len(n.buttons) > 0:
			return n.setPos(Button(0))
		}
		return Boundary
	case LevelContent:
		switch {
		case n.pos.Index+1 < n.lines:
			return n.setPos(ContentLine(n.pos.Index + 1))
		case len(n.buttons) > 0:
			return n.setPos(Button(0))
		}
		return Boundary
	case LevelButton:
		return Boundary
	}
	return Ignored
}

// Up moves one row toward the header
func (n *Navigator) Up() Move {
	n.revalidate()
	switch n.pos.Level {
	case LevelHeader:
		return Boundary
	case LevelContent:
		if n.pos.Index > 0 {
			return n.setPos(ContentLine(n.pos.Index - 1))
		}
		return n.setPos(Header)
	case LevelButton:
		if n.lines > 0 {
			return n.setPos(ContentLine(n.lines - 1))
		}
		return n.setPos(Header)
	}
	return Ignored
}

// NextButton moves right across the buttons, wrapping
func (n *Navigator) NextButton() Move {
	return n.stepButton(logic.Next)
}

// PreviousButton moves left across the buttons, wrapping
func (n *Navigator) PreviousButton() Move {
	return n.stepButton(logic.Previous)
}

func (n *Navigator) stepButton(step func(i, count int) int) Move {
	n.revalidate()
	if n.pos.Level != LevelButton {
		return Ignored
	}
	if len(n.buttons) < 2 {
		return Boundary
	}
	return n.setPos(Button(step(n.pos.Index, len(n.buttons))))
}

func (n *Navigator) load(item Item) {
	n.lines = 0
	n.buttons = nil
	if item == nil {
		return
	}
	n.lines = item.ContentLineCount()
	n.buttons = append([]string(nil), item.Buttons()...)
}

// revalidate resets a position left out of range by a shrinking item
func (n *Navigator) revalidate() {
	switch n.pos.Level {
	case LevelContent:
		if n.pos.Index < 0 || n.pos.Index >= n.lines {
			n.setPos(Header)
		}
	case LevelButton:
		if n.pos.Index < 0 || n.pos.Index >= len(n.buttons) {
			n.setPos(Header)
		}
	}
}

func (n *Navigator) setPos(p Position) Move {
	old := n.pos
	n.pos = p
	if old != p {
		n.bus.Publish(PositionChangedEvent{Old: old, New: p})
	}
	return Moved
}
