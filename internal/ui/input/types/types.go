package types

import "accessnav/internal/domain"

// Surface is a modal UI component that takes exclusive keyboard focus
// while it is active.
type Surface interface {
	// Name identifies the surface in logs, rule tables and error notices
	Name() string

	// IsActive reports whether the surface currently owns input. It must be
	// cheap and free of side effects; it is polled every event and frame.
	IsActive() bool

	// HandleKey processes one key and reports whether it was consumed
	HandleKey(ev Event) bool
}

// Navigable is the directional half of the surface contract. Surfaces that
// implement it can be driven by Route.
type Navigable interface {
	Surface

	Up() bool
	Down() bool
	Left() bool
	Right() bool
	Activate() bool

	// Cancel closes the surface immediately, discarding pending state
	Cancel()

	// Announcement describes the current focus for screen readers
	Announcement() string
}

// TypeAhead is implemented by surfaces that accept printable characters
type TypeAhead interface {
	TypeChar(r rune) bool
	Backspace() bool
}

// Snapshotter lets the dispatcher roll a surface back when one of its
// handlers fails midway.
type Snapshotter interface {
	Snapshot() any
	Restore(snapshot any)
}

// Opener is implemented by surfaces that can be opened on demand
type Opener interface {
	Open()
}

// Context is the host adapter surfaces use instead of reaching into host
// internals.
type Context interface {
	CursorPosition() domain.Point
	SetCursorPosition(p domain.Point)
	Bounds() domain.Bounds
	Frame() uint64
}
