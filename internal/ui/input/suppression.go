package input

import "accessnav/internal/ui/input/types"

// IsSuppressed reports whether background input must stand down: true when
// override is set or any of the surfaces is active.
func IsSuppressed(surfaces []types.Surface, override bool) bool {
	if override {
		return true
	}
	for _, s := range surfaces {
		if s != nil && s.IsActive() {
			return true
		}
	}
	return false
}

// Suppressor answers IsSuppressed for every surface in a registry. It holds
// no copy of surface state; each call reads the surfaces directly.
type Suppressor struct {
	registry *Registry
	override bool
}

// NewSuppressor creates a suppressor over registry
func NewSuppressor(registry *Registry) *Suppressor {
	return &Suppressor{registry: registry}
}

// IsSuppressed reports whether background cursor input should be ignored
func (s *Suppressor) IsSuppressed() bool {
	return s.override || s.registry.AnyActive()
}

// SetOverride forces suppression on regardless of surfaces
func (s *Suppressor) SetOverride(on bool) {
	s.override = on
}

// Override reports whether the override is set
func (s *Suppressor) Override() bool {
	return s.override
}
