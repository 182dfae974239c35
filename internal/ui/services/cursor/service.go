package cursor

import (
	"accessnav/internal/domain"
	"accessnav/internal/speech"
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/events"
)

// Service is the free-roaming map cursor. It runs in the background, so it
// checks suppression on every tick and moves at most once per frame.
type Service struct {
	host       Host
	suppressor Suppression
	announcer  speech.Announcer
	bus        events.EventBus
	guard      logic.FrameGuard
	walk       Step // applied on every tick while set
}

// NewService creates a cursor over host
func NewService(host Host, suppressor Suppression, announcer speech.Announcer, bus events.EventBus) *Service {
	if announcer == nil {
		announcer = speech.Discard
	}
	return &Service{
		host:       host,
		suppressor: suppressor,
		announcer:  announcer,
		bus:        events.OrNull(bus),
	}
}

// Position returns the cursor cell
func (s *Service) Position() domain.Point {
	return s.host.CursorPosition()
}

// SetWalk sets a step applied on every tick; a zero step stops walking
func (s *Service) SetWalk(step Step) {
	s.walk = step
}

// Walking returns the current walk step
func (s *Service) Walking() (Step, bool) {
	return s.walk, !s.walk.Zero()
}

// Tick applies the walk step for frame. A frame walks at most once, however
// often the host ticks it. Suppression is read fresh on every call, so the
// cursor resumes on the first frame after the last surface closes.
func (s *Service) Tick(frame uint64) Outcome {
	if s.walk.Zero() {
		return Idle
	}
	if s.suppressed() {
		return Suppressed
	}
	if !s.guard.Enter(frame) {
		return Repeated
	}
	return s.apply(s.walk)
}

// Move applies one key press worth of step. Every call moves.
func (s *Service) Move(step Step) Outcome {
	if step.Zero() {
		return Idle
	}
	if s.suppressed() {
		return Suppressed
	}
	return s.apply(step)
}

func (s *Service) suppressed() bool {
	return s.suppressor != nil && s.suppressor.IsSuppressed()
}

func (s *Service) apply(step Step) Outcome {
	old := s.host.CursorPosition()
	target := domain.Point{X: old.X + step.DX, Z: old.Z + step.DZ}
	if !s.host.Bounds().Contains(target) {
		s.walk = Step{}
		s.announcer.Speak("Edge", domain.PriorityNormal)
		return Edge
	}

	s.host.SetCursorPosition(target)
	s.bus.Publish(CursorMovedEvent{Old: old, New: target})
	s.announcer.Speak(target.String(), domain.PriorityLow)
	return Moved
}

// WhereAmI speaks the cursor cell at normal priority
func (s *Service) WhereAmI() {
	s.announcer.Speak(s.host.CursorPosition().String(), domain.PriorityNormal)
}
