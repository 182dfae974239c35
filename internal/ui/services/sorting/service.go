package sorting

import (
	"sort"

	"accessnav/internal/domain"
	"accessnav/internal/ui/logic"
	"accessnav/internal/ui/services/events"
)

// Service keeps the current item order
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new sorting service listing items as configured
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{Current: OrderCatalog},
		bus:   events.OrNull(bus),
	}
}

// Current returns the current order
func (s *Service) Current() Order {
	return s.state.Current
}

// SetOrder changes the order and publishes OrderChangedEvent
func (s *Service) SetOrder(order Order) {
	if order == s.state.Current {
		return
	}
	old := s.state.Current
	s.state.Current = order
	s.bus.Publish(OrderChangedEvent{Old: old, New: order})
}

// Next cycles to the following order
func (s *Service) Next() Order {
	idx := 0
	for i, o := range orders {
		if o == s.state.Current {
			idx = i
			break
		}
	}
	s.SetOrder(orders[(idx+1)%len(orders)])
	return s.state.Current
}

// Sort returns items in the current order. The input is not modified and
// ties keep their catalog order.
func (s *Service) Sort(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)

	switch s.state.Current {
	case OrderLabel:
		sort.SliceStable(out, func(i, j int) bool {
			return logic.Fold(out[i].Label) < logic.Fold(out[j].Label)
		})
	case OrderButtons:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Buttons) > len(out[j].Buttons)
		})
	}
	return out
}
