package logic

import "accessnav/internal/domain"

// ItemStore provides access to the catalog shown by list surfaces.
// All returns items in display order.
type ItemStore interface {
	Get(id string) (domain.Item, bool)
	All() []domain.Item
	Add(item domain.Item) error
	Update(item domain.Item) error
	Remove(id string) bool
	Len() int
}

// Event types
type ItemsChangedEvent struct {
	Count int
}
