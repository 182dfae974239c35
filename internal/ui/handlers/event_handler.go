package handlers

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"accessnav/internal/eventbus"
	"accessnav/internal/ui/state"
)

// faultDisplay is how long a dispatch fault stays in the status bar
const faultDisplay = 5 * time.Second

// EventHandler applies domain events from the bus to the UI state
type EventHandler struct {
	state      *state.AppState
	clearAfter func(time.Duration) tea.Cmd
	faults     int
}

// NewEventHandler creates a new event handler. clearAfter builds the
// command that clears the status bar later.
func NewEventHandler(appState *state.AppState, clearAfter func(time.Duration) tea.Cmd) *EventHandler {
	return &EventHandler{
		state:      appState,
		clearAfter: clearAfter,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DispatchFaultEvent:
		h.faults++
		h.state.SetError(fmt.Sprintf("%s failed on %s: %s", e.Rule, e.Key, e.Cause))
		if h.clearAfter != nil {
			return h.clearAfter(faultDisplay)
		}

	case eventbus.SelectionCommittedEvent:
		log.Printf("Selection committed in %s: %d cells", e.Surface, len(e.Cells))

	case eventbus.ItemActivatedEvent:
		if e.Button != "" {
			log.Printf("Pressed %s on %s in %s", e.Button, e.ItemID, e.Surface)
		} else {
			log.Printf("Activated %s in %s", e.ItemID, e.Surface)
		}
	}
	return nil
}

// Faults returns how many dispatch faults have been reported
func (h *EventHandler) Faults() int {
	return h.faults
}
