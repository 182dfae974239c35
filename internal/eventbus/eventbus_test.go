package eventbus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInPublishOrder(t *testing.T) {
	b := New()

	var mu sync.Mutex
	var got []string
	b.Subscribe(EventAnnouncement, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(AnnouncementEvent).Text)
	})

	for _, text := range []string{"one", "two", "three"} {
		b.Publish(AnnouncementEvent{Text: text})
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"one", "two", "three"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	b := New()

	var mu sync.Mutex
	calls := 0
	unsubscribe := b.Subscribe(EventSurfaceOpened, func(DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	unsubscribe()

	b.Publish(SurfaceOpenedEvent{Name: "inventory"})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestBusRecoversHandlerPanic(t *testing.T) {
	b := New()

	var mu sync.Mutex
	delivered := false
	b.Subscribe(EventDispatchFault, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventDispatchFault, func(DomainEvent) {
		mu.Lock()
		delivered = true
		mu.Unlock()
	})

	b.Publish(DispatchFaultEvent{Rule: "inventory"})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, delivered, "second handler should still run after the first panicked")
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(SurfaceClosedEvent{Name: "inventory"})
	})
}
