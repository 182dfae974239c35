package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"accessnav/internal/ui/input/types"
)

func TestIsSuppressed(t *testing.T) {
	a := newStub("A", false)
	b := newStub("B", false)
	surfaces := []types.Surface{a, b}

	assert.False(t, IsSuppressed(surfaces, false))
	assert.True(t, IsSuppressed(surfaces, true))
	b.active = true
	assert.True(t, IsSuppressed(surfaces, false))
	assert.False(t, IsSuppressed(nil, false))
}

func TestSuppressorFollowsLiveState(t *testing.T) {
	a := newStub("A", false)
	reg := NewRegistry()
	reg.MustRegister(a, 1, "")
	s := NewSuppressor(reg)

	assert.False(t, s.IsSuppressed())
	a.active = true
	assert.True(t, s.IsSuppressed())
	a.active = false
	assert.False(t, s.IsSuppressed(), "closing the surface lifts suppression on the next query")

	s.SetOverride(true)
	assert.True(t, s.Override())
	assert.True(t, s.IsSuppressed())
}

func TestSuppressorDoesNotAllocate(t *testing.T) {
	reg := NewRegistry()
	for i, name := range []string{"A", "B", "C"} {
		reg.MustRegister(newStub(name, false), i, "")
	}
	s := NewSuppressor(reg)
	allocs := testing.AllocsPerRun(100, func() { _ = s.IsSuppressed() })
	assert.Zero(t, allocs)
}
