package navigation

import (
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/events"
)

// Service is the cursor of one list-shaped surface.
// Up and down wrap around; paging and home/end clamp.
type Service struct {
	state   *State
	bus     events.EventBus
	countFn func() int // Function to get the current item count
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 10,
		},
		bus: events.OrNull(bus),
	}
}

// SetCountFunction sets the function that reports the item count.
// It is read on every move so the list may grow or shrink between events.
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// Count returns the item count seen by the last refresh
func (s *Service) Count() int {
	s.refresh()
	return s.state.Count
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate moves in a direction and reports whether the cursor changed
func (s *Service) Navigate(direction Direction) bool {
	s.refresh()
	oldCursor := s.state.Cursor
	n := s.state.Count
	wrapped := false

	switch direction {
	case DirectionUp:
		s.state.Cursor = logic.Previous(s.state.Cursor, n)
		wrapped = n > 1 && oldCursor == 0
	case DirectionDown:
		s.state.Cursor = logic.Next(s.state.Cursor, n)
		wrapped = n > 1 && oldCursor == n-1
	case DirectionPageUp:
		s.state.Cursor = logic.Clamp(s.state.Cursor-s.pageSize(), n)
	case DirectionPageDown:
		s.state.Cursor = logic.Clamp(s.state.Cursor+s.pageSize(), n)
	case DirectionHome:
		s.state.Cursor = 0
	case DirectionEnd:
		s.state.Cursor = logic.Clamp(n-1, n)
	}
	s.ensureVisible()

	if oldCursor == s.state.Cursor {
		return false
	}
	s.bus.Publish(CursorMovedEvent{
		OldIndex: oldCursor,
		NewIndex: s.state.Cursor,
		Wrapped:  wrapped,
	})
	return true
}

// MoveToIndex moves cursor to a specific index, clamped to the list
func (s *Service) MoveToIndex(index int) {
	s.refresh()

	oldCursor := s.state.Cursor
	s.state.Cursor = logic.Clamp(index, s.state.Count)
	s.ensureVisible()

	if oldCursor != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}

// Reset returns the cursor to the first item
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
}

// Revalidate clamps a cursor left stale by a shrinking list
func (s *Service) Revalidate() {
	s.refresh()
	s.state.Cursor = logic.Clamp(s.state.Cursor, s.state.Count)
	s.ensureVisible()
}

func (s *Service) refresh() {
	if s.countFn != nil {
		s.state.Count = s.countFn()
	}
}

func (s *Service) pageSize() int {
	if s.state.ViewportHeight <= 1 {
		return 1
	}
	return s.state.ViewportHeight - 1
}

func (s *Service) ensureVisible() {
	offset := s.state.ViewportOffset
	if s.state.Cursor < offset {
		offset = s.state.Cursor
	} else if s.state.Cursor >= offset+s.state.ViewportHeight {
		offset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if offset == s.state.ViewportOffset {
		return
	}
	s.state.ViewportOffset = offset
	s.bus.Publish(ViewportChangedEvent{
		Offset: s.state.ViewportOffset,
		Height: s.state.ViewportHeight,
	})
}
