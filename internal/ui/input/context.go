package input

import (
	"accessnav/internal/domain"
	"accessnav/internal/ui/state"
)

// ModelContext implements types.Context over the host state
type ModelContext struct {
	State *state.AppState
}

// CursorPosition returns the background cursor position
func (c *ModelContext) CursorPosition() domain.Point {
	return c.State.Cursor
}

// SetCursorPosition moves the background cursor, clamped to the map
func (c *ModelContext) SetCursorPosition(p domain.Point) {
	c.State.Cursor = c.State.Bounds.Clamp(p)
}

// Bounds returns the map size
func (c *ModelContext) Bounds() domain.Bounds {
	return c.State.Bounds
}

// Frame returns the current frame number
func (c *ModelContext) Frame() uint64 {
	return c.State.Frame
}
