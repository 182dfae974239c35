// Package speech is the assistive output channel. Announcers are
// fire-and-forget: Speak never waits for the utterance to finish.
package speech

import (
	"log"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
)

// Announcer accepts text for the output device
type Announcer interface {
	Speak(text string, priority domain.Priority)
}

// Func adapts a function to Announcer
type Func func(text string, priority domain.Priority)

func (f Func) Speak(text string, priority domain.Priority) { f(text, priority) }

// Discard drops every announcement
var Discard Announcer = Func(func(string, domain.Priority) {})

// BusAnnouncer publishes announcements on the domain event bus
type BusAnnouncer struct {
	bus eventbus.EventBus
}

// NewBusAnnouncer creates an announcer backed by bus
func NewBusAnnouncer(bus eventbus.EventBus) *BusAnnouncer {
	return &BusAnnouncer{bus: bus}
}

func (a *BusAnnouncer) Speak(text string, priority domain.Priority) {
	if text == "" {
		return
	}
	a.bus.Publish(eventbus.AnnouncementEvent{Text: text, Priority: priority})
}

// LogAnnouncer writes announcements to the standard logger.
// Low priority text is skipped, it is too frequent to be useful in a log.
type LogAnnouncer struct{}

func (LogAnnouncer) Speak(text string, priority domain.Priority) {
	if priority == domain.PriorityLow {
		return
	}
	log.Printf("Speech(%s): %s", priority, text)
}

// Multi fans one announcement out to several announcers in order
func Multi(announcers ...Announcer) Announcer {
	return Func(func(text string, priority domain.Priority) {
		for _, a := range announcers {
			if a != nil {
				a.Speak(text, priority)
			}
		}
	})
}
