package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAnnouncement       EventType = "Announcement"
	EventSurfaceOpened      EventType = "SurfaceOpened"
	EventSurfaceClosed      EventType = "SurfaceClosed"
	EventDispatchFault      EventType = "DispatchFault"
	EventSelectionCommitted EventType = "SelectionCommitted"
	EventItemActivated      EventType = "ItemActivated"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AnnouncementEvent carries one unit of text for the assistive output channel
type AnnouncementEvent struct {
	Text     string
	Priority Priority
}

func (e AnnouncementEvent) Type() EventType { return EventAnnouncement }

// SurfaceOpenedEvent is emitted when a modal surface becomes active
type SurfaceOpenedEvent struct {
	Name string
}

func (e SurfaceOpenedEvent) Type() EventType { return EventSurfaceOpened }

// SurfaceClosedEvent is emitted when a modal surface is closed or cancelled
type SurfaceClosedEvent struct {
	Name      string
	Cancelled bool
}

func (e SurfaceClosedEvent) Type() EventType { return EventSurfaceClosed }

// DispatchFaultEvent is emitted when a rule's guard or handler panicked
type DispatchFaultEvent struct {
	Rule  string
	Key   string
	Cause string
}

func (e DispatchFaultEvent) Type() EventType { return EventDispatchFault }

// SelectionCommittedEvent is emitted when an area selection is confirmed
type SelectionCommittedEvent struct {
	Surface string
	Cells   []Point
}

func (e SelectionCommittedEvent) Type() EventType { return EventSelectionCommitted }

// ItemActivatedEvent is emitted when a list item or one of its buttons is activated
type ItemActivatedEvent struct {
	Surface string
	ItemID  string
	Button  string // empty when the item itself was activated
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
