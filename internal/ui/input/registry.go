package input

import (
	"errors"
	"fmt"
	"sort"

	"accessnav/internal/ui/input/types"
)

var (
	ErrDuplicateSurface  = errors.New("surface already registered")
	ErrUnknownParent     = errors.New("parent surface not registered")
	ErrPriorityInversion = errors.New("child surface must be checked before its parent")
	ErrNilSurface        = errors.New("surface is nil")
)

// Registration describes where a surface sits in dispatch order.
// Lower priorities are checked first. A surface opened from another one
// names it as Parent and must have a lower priority than it.
type Registration struct {
	Surface  types.Surface
	Priority int
	Parent   string
}

type entry struct {
	Registration
	order int
}

// Registry holds every modal surface in the order they are checked
type Registry struct {
	entries []*entry
	byName  map[string]*entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// Register adds a surface. Parents must be registered first so that a
// priority inversion is reported at startup instead of at dispatch time.
func (r *Registry) Register(s types.Surface, priority int, parent string) error {
	if s == nil {
		return ErrNilSurface
	}
	name := s.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSurface, name)
	}
	if parent != "" {
		p, ok := r.byName[parent]
		if !ok {
			return fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, parent, name)
		}
		if priority >= p.Priority {
			return fmt.Errorf("%w: %s has priority %d, parent %s has %d",
				ErrPriorityInversion, name, priority, parent, p.Priority)
		}
	}

	e := &entry{
		Registration: Registration{Surface: s, Priority: priority, Parent: parent},
		order:        len(r.byName),
	}
	r.byName[name] = e
	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].Priority != r.entries[j].Priority {
			return r.entries[i].Priority < r.entries[j].Priority
		}
		return r.entries[i].order < r.entries[j].order
	})
	return nil
}

// MustRegister is Register for static wiring, it panics on error
func (r *Registry) MustRegister(s types.Surface, priority int, parent string) {
	if err := r.Register(s, priority, parent); err != nil {
		panic(err)
	}
}

// Lookup returns a surface by name
func (r *Registry) Lookup(name string) (types.Surface, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.Surface, true
}

// Registrations returns the surfaces in dispatch order
func (r *Registry) Registrations() []Registration {
	out := make([]Registration, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Registration
	}
	return out
}

// Len returns the number of registered surfaces
func (r *Registry) Len() int {
	return len(r.entries)
}

// AnyActive reports whether any registered surface is active.
// It reads live state and does not allocate.
func (r *Registry) AnyActive() bool {
	for _, e := range r.entries {
		if e.Surface.IsActive() {
			return true
		}
	}
	return false
}

// Top returns the first active surface in dispatch order
func (r *Registry) Top() (types.Surface, bool) {
	for _, e := range r.entries {
		if e.Surface.IsActive() {
			return e.Surface, true
		}
	}
	return nil, false
}

// ActiveChain returns the focused surface and the parents it was opened
// from, outermost first.
func (r *Registry) ActiveChain() []types.Surface {
	top, ok := r.Top()
	if !ok {
		return nil
	}
	var chain []types.Surface
	for e := r.byName[top.Name()]; e != nil; e = r.byName[e.Parent] {
		chain = append([]types.Surface{e.Surface}, chain...)
	}
	return chain
}
