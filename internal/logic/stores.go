package logic

import (
	"fmt"
	"sync"

	"accessnav/internal/domain"
)

// MemoryItemStore is an in-memory implementation of ItemStore
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []domain.Item
	index map[string]int // id -> position in items
}

// NewMemoryItemStore creates a store holding items in the given order
func NewMemoryItemStore(items ...domain.Item) (*MemoryItemStore, error) {
	s := &MemoryItemStore{index: make(map[string]int)}
	for _, it := range items {
		if err := s.Add(it); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryItemStore) Get(id string) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Item{}, false
	}
	return cloneItem(s.items[i]), true
}

func (s *MemoryItemStore) All() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		result[i] = cloneItem(it)
	}
	return result
}

func (s *MemoryItemStore) Add(item domain.Item) error {
	if item.ID == "" {
		return fmt.Errorf("item %q has no id", item.Label)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[item.ID]; exists {
		return fmt.Errorf("item %q already exists", item.ID)
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, cloneItem(item))
	return nil
}

func (s *MemoryItemStore) Update(item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[item.ID]
	if !ok {
		return fmt.Errorf("item %q not found", item.ID)
	}
	s.items[i] = cloneItem(item)
	return nil
}

func (s *MemoryItemStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return true
}

func (s *MemoryItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func cloneItem(it domain.Item) domain.Item {
	it.Lines = append([]string(nil), it.Lines...)
	it.Buttons = append([]string(nil), it.Buttons...)
	return it
}
