package modes

import (
	"fmt"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/speech"
	"accessnav/internal/ui/services/events"
)

// Options carries what every surface needs from its host
type Options struct {
	Announcer speech.Announcer
	Bus       eventbus.EventBus // domain events, may be nil
	UIBus     events.EventBus   // service-level events, may be nil

	AnnouncePositions  bool // append "i of n" to list announcements
	AnnounceBoundaries bool // speak "Top" or "Bottom" when a step hits an edge
}

// DefaultOptions returns options with every announcement enabled
func DefaultOptions(announcer speech.Announcer) Options {
	return Options{
		Announcer:          announcer,
		AnnouncePositions:  true,
		AnnounceBoundaries: true,
	}
}

// surface holds the state shared by every mode: its name, whether it is
// open and where announcements go.
type surface struct {
	name   string
	active bool
	opts   Options
}

func newSurface(name string, opts Options) surface {
	if opts.Announcer == nil {
		opts.Announcer = speech.Discard
	}
	return surface{name: name, opts: opts}
}

func (s *surface) Name() string {
	return s.name
}

func (s *surface) IsActive() bool {
	return s.active
}

func (s *surface) open() {
	s.active = true
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(eventbus.SurfaceOpenedEvent{Name: s.name})
	}
}

func (s *surface) close(cancelled bool) {
	if !s.active {
		return
	}
	s.active = false
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(eventbus.SurfaceClosedEvent{Name: s.name, Cancelled: cancelled})
	}
}

func (s *surface) say(text string) {
	s.opts.Announcer.Speak(text, domain.PriorityNormal)
}

func (s *surface) sayf(format string, args ...interface{}) {
	s.say(fmt.Sprintf(format, args...))
}

func (s *surface) interrupt(text string) {
	s.opts.Announcer.Speak(text, domain.PriorityHigh)
}

func (s *surface) boundary(atEnd bool) {
	if !s.opts.AnnounceBoundaries {
		return
	}
	if atEnd {
		s.say("Bottom")
	} else {
		s.say("Top")
	}
}

func (s *surface) publish(event eventbus.DomainEvent) {
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(event)
	}
}
