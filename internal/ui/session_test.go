package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessnav/internal/config"
	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/speech"
	"accessnav/internal/ui/input/types"
)

func newTestSession(t *testing.T) (*Session, *speech.Recorder) {
	t.Helper()
	rec := &speech.Recorder{}
	s, err := NewSession(config.DefaultConfig(), nil, rec)
	require.NoError(t, err)
	return s, rec
}

// press advances one frame before every key, the way the host does
func press(t *testing.T, s *Session, keys ...string) Command {
	t.Helper()
	var c Command
	for _, k := range keys {
		ev, err := types.ParseKey(k)
		require.NoError(t, err, k)
		s.Tick()
		c = s.Press(ev)
	}
	return c
}

func topName(s *Session) string {
	top, ok := s.Top()
	if !ok {
		return ""
	}
	return top.Name()
}

func TestSessionOpensInventory(t *testing.T) {
	s, rec := newTestSession(t)

	assert.Equal(t, CommandHandled, press(t, s, "i"))
	assert.Equal(t, SurfaceInventory, topName(s))
	assert.Equal(t, "Inventory, Cat, 1 of 5", rec.Last())

	press(t, s, "down")
	assert.Equal(t, "Car, 2 of 5", rec.Last())

	press(t, s, "esc")
	assert.Equal(t, "Inventory closed", rec.Last())
	assert.Equal(t, "", topName(s))
}

func TestSessionOpenSurfaceSwallowsHostKeys(t *testing.T) {
	s, rec := newTestSession(t)
	press(t, s, "i")

	// q is type-ahead here, not quit
	assert.Equal(t, CommandHandled, press(t, s, "q"))
	assert.Equal(t, "No match for q", rec.Last())

	// the list has no horizontal movement, the key must not reach the map
	press(t, s, "right")
	assert.Equal(t, domain.Point{}, s.State().Cursor)

	assert.Equal(t, CommandQuit, press(t, s, "ctrl+c"))
}

func TestSessionHostKeysWithoutSurface(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "right", "down")
	assert.Equal(t, domain.Point{X: 1, Z: 1}, s.State().Cursor)
	assert.Equal(t, "1, 1", rec.Last())

	press(t, s, "up", "up")
	assert.Equal(t, "Edge", rec.Last())

	assert.Equal(t, CommandHelp, press(t, s, "?"))
	assert.Equal(t, CommandQuit, press(t, s, "q"))
	assert.Equal(t, CommandNone, press(t, s, "x"))
}

func TestSessionGlobalKeys(t *testing.T) {
	s, rec := newTestSession(t)

	assert.Equal(t, CommandTranscript, press(t, s, "ctrl+t"))
	assert.Equal(t, CommandCopy, press(t, s, "ctrl+y"))

	press(t, s, "right")
	press(t, s, "ctrl+r")
	last := rec.Utterances[len(rec.Utterances)-1]
	assert.Equal(t, "1, 0", last.Text)
	assert.Equal(t, domain.PriorityHigh, last.Priority)

	text, ok := s.LastAnnouncement()
	require.True(t, ok)
	assert.Equal(t, "1, 0", text)
}

func TestSessionWalkIsSuppressedBySurfaces(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "g")
	assert.Equal(t, "Walking", rec.Last())
	assert.True(t, s.Walking())

	s.Tick()
	assert.Equal(t, domain.Point{X: 1}, s.State().Cursor)

	// the press ticks once before the key lands
	press(t, s, "i")
	assert.Equal(t, domain.Point{X: 2}, s.State().Cursor)
	assert.True(t, s.Suppressed())
	s.Tick()
	s.Tick()
	assert.Equal(t, domain.Point{X: 2}, s.State().Cursor)

	press(t, s, "esc")
	assert.False(t, s.Suppressed())
	s.Tick()
	assert.Equal(t, domain.Point{X: 3}, s.State().Cursor)
}

func TestSessionFreezeForcesSuppression(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "g", "ctrl+o")
	assert.Equal(t, "Cursor frozen", rec.Last())
	assert.True(t, s.Suppressed())
	at := s.State().Cursor
	s.Tick()
	assert.Equal(t, at, s.State().Cursor)

	press(t, s, "ctrl+o")
	assert.Equal(t, "Cursor released", rec.Last())
	assert.False(t, s.Suppressed())
	s.Tick()
	assert.Equal(t, at.X+1, s.State().Cursor.X)
}

func TestSessionWalkStopsAtEdge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Map.Width = 3
	rec := &speech.Recorder{}
	s, err := NewSession(cfg, nil, rec)
	require.NoError(t, err)

	press(t, s, "g")
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	assert.Equal(t, domain.Point{X: 2}, s.State().Cursor)
	assert.False(t, s.Walking())
	assert.Contains(t, rec.Texts(), "Edge")
}

func TestSessionReleaseAsksAndRemoves(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "d", "enter")
	assert.Equal(t, "Cat, 2 lines, 2 buttons", rec.Last())

	press(t, s, "down", "down", "down", "right")
	assert.Equal(t, "Release button, 2 of 2", rec.Last())

	press(t, s, "enter")
	assert.Equal(t, SurfaceConfirm, topName(s))
	assert.Equal(t, "Release Cat? No", rec.Last())
	assert.Equal(t, "Details > Confirm", s.Focus())

	press(t, s, "ctrl+w")
	assert.Contains(t, rec.Last(), "Details, then Confirm")

	press(t, s, "y")
	assert.Equal(t, SurfaceDetails, topName(s))
	assert.Contains(t, rec.Texts(), "Cat released")
	assert.Equal(t, "Car, 1 of 4", rec.Last())

	_, ok := s.State().ItemByID("cat")
	assert.False(t, ok)
	assert.Len(t, s.State().Items, 4)
}

func TestSessionReleaseDeclined(t *testing.T) {
	s, _ := newTestSession(t)

	press(t, s, "d", "enter", "down", "down", "down", "right", "enter", "n")
	assert.Equal(t, SurfaceDetails, topName(s))
	assert.Len(t, s.State().Items, 5)
}

func TestSessionForbidToggles(t *testing.T) {
	s, rec := newTestSession(t)

	// up wraps to the last item
	press(t, s, "d", "up", "enter", "down")
	assert.Equal(t, "Forbid button, 1 of 1", rec.Last())

	press(t, s, "enter")
	assert.Equal(t, "Steel forbidden", rec.Last())
	steel, ok := s.State().ItemByID("steel")
	require.True(t, ok)
	assert.Equal(t, []string{"Allow"}, steel.Buttons)

	press(t, s, "down", "enter")
	steel, _ = s.State().ItemByID("steel")
	assert.Equal(t, []string{"Forbid"}, steel.Buttons)
	assert.Equal(t, "Steel allowed", rec.Last())
}

func TestSessionRefuelSetsLine(t *testing.T) {
	s, _ := newTestSession(t)

	press(t, s, "d", "down", "enter", "down", "down", "down", "enter")
	require.Equal(t, SurfaceQuantity, topName(s))

	press(t, s, "up", "shift+up", "enter")
	assert.Equal(t, SurfaceDetails, topName(s))

	car, ok := s.State().ItemByID("car")
	require.True(t, ok)
	assert.Equal(t, "Fuel 51%", car.Lines[1])
}

func TestSessionAreaPicksCells(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "s")
	assert.Equal(t, SurfaceArea, topName(s))

	press(t, s, "enter", "right", "down", "enter", "ctrl+s")
	assert.Equal(t, "", topName(s))
	assert.True(t, s.State().IsPicked(domain.Point{X: 1, Z: 1}))
	assert.True(t, s.State().IsPicked(domain.Point{X: 0, Z: 0}))
	assert.Equal(t, "4 cells picked", s.State().StatusMessage)
	assert.NotEmpty(t, rec.Texts())
}

func TestSessionPublishesOnBus(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.ItemActivatedEvent, 1)
	bus.Subscribe(eventbus.EventItemActivated, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ItemActivatedEvent)
	})

	s, err := NewSession(config.DefaultConfig(), bus)
	require.NoError(t, err)
	press(t, s, "i", "enter")

	ev := <-got
	assert.Equal(t, "cat", ev.ItemID)
	assert.Equal(t, SurfaceInventory, ev.Surface)
	assert.Equal(t, "Holding Cat", s.State().StatusMessage)
}

func TestSessionRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Map.Width = 0
	_, err := NewSession(cfg, nil)
	assert.Error(t, err)
}

func TestItemsFromConfigDerivesIDs(t *testing.T) {
	items := ItemsFromConfig([]config.ItemConfig{
		{Label: "Iron Ore", Lines: []string{"Stack of 5"}},
		{ID: "x", Label: "X"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "iron-ore", items[0].ID)
	assert.Equal(t, []string{"Stack of 5"}, items[0].Lines)
	assert.Equal(t, "x", items[1].ID)
}

func TestSessionSpeechAgesOut(t *testing.T) {
	s, _ := newTestSession(t)
	press(t, s, "i")

	u, ok := s.Speaking()
	require.True(t, ok)
	assert.Equal(t, "Inventory, Cat, 1 of 5", u.Text)

	for i := 0; i < speechTicks; i++ {
		s.Tick()
	}
	_, ok = s.Speaking()
	assert.False(t, ok)
}

func TestSessionOrderCyclesItems(t *testing.T) {
	s, rec := newTestSession(t)

	press(t, s, "o")
	assert.Equal(t, "Sorted by name", rec.Last())
	press(t, s, "i")
	assert.Equal(t, "Inventory, Car, 1 of 5", rec.Last())

	s, rec = newTestSession(t)
	press(t, s, "o", "o")
	assert.Equal(t, "Sorted by buttons", rec.Last())
	press(t, s, "i")
	assert.Equal(t, "Inventory, Dog, 1 of 5", rec.Last())
}

func TestSessionRepeatedKeysWithinOneFrame(t *testing.T) {
	s, rec := newTestSession(t)
	press(t, s, "i")

	down, err := types.ParseKey("down")
	require.NoError(t, err)
	s.Tick()
	s.Press(down)
	s.Press(down)
	assert.Equal(t, "Dog, 3 of 5", rec.Last())
}

func TestSessionDeliverDropsRedelivery(t *testing.T) {
	s, rec := newTestSession(t)
	press(t, s, "i")

	down, err := types.ParseKey("down")
	require.NoError(t, err)
	assert.Equal(t, CommandHandled, s.Deliver(1, down))
	n := len(rec.Utterances)
	assert.Equal(t, CommandHandled, s.Deliver(1, down))
	assert.Len(t, rec.Utterances, n)
	assert.Equal(t, "Car, 2 of 5", rec.Last())

	s.Deliver(2, down)
	assert.Equal(t, "Dog, 3 of 5", rec.Last())

	// host keys are not replayed either
	s.Deliver(3, types.KeyPress(types.KeyEsc))
	s.Deliver(4, down)
	at := s.State().Cursor
	assert.Equal(t, CommandHandled, s.Deliver(4, down))
	assert.Equal(t, at, s.State().Cursor)
}

func TestSessionMapStepsWithinOneFrame(t *testing.T) {
	s, _ := newTestSession(t)
	right, err := types.ParseKey("right")
	require.NoError(t, err)

	s.Press(right)
	s.Press(right)
	assert.Equal(t, domain.Point{X: 2}, s.State().Cursor)
}
