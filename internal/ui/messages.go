package ui

import (
	"time"

	"accessnav/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer and advances one frame
type tickMsg time.Time

// clipboardMsg contains the result of copying an announcement
type clipboardMsg struct {
	text string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// quitMsg signals that the application should quit
type quitMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
