package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessnav/internal/domain"
)

func TestMemoryItemStoreKeepsOrder(t *testing.T) {
	s, err := NewMemoryItemStore(
		domain.Item{ID: "a", Label: "A"},
		domain.Item{ID: "b", Label: "B"},
		domain.Item{ID: "c", Label: "C"},
	)
	require.NoError(t, err)

	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))
	require.NoError(t, s.Add(domain.Item{ID: "d", Label: "D"}))

	var ids []string
	for _, it := range s.All() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)

	c, ok := s.Get("c")
	require.True(t, ok)
	assert.Equal(t, "C", c.Label)
	assert.Equal(t, 3, s.Len())
}

func TestMemoryItemStoreRejectsBadItems(t *testing.T) {
	s, err := NewMemoryItemStore()
	require.NoError(t, err)

	assert.Error(t, s.Add(domain.Item{Label: "no id"}))
	require.NoError(t, s.Add(domain.Item{ID: "x", Label: "X"}))
	assert.Error(t, s.Add(domain.Item{ID: "x", Label: "X again"}))
	assert.Error(t, s.Update(domain.Item{ID: "missing"}))

	_, err = NewMemoryItemStore(domain.Item{ID: "x"}, domain.Item{ID: "x"})
	assert.Error(t, err)
}

func TestMemoryItemStoreReturnsCopies(t *testing.T) {
	s, err := NewMemoryItemStore(domain.Item{ID: "a", Label: "A", Buttons: []string{"Go"}})
	require.NoError(t, err)

	all := s.All()
	all[0].Buttons[0] = "Changed"
	got, _ := s.Get("a")
	assert.Equal(t, []string{"Go"}, got.Buttons)

	got.Buttons = []string{"Stop"}
	require.NoError(t, s.Update(got))
	got, _ = s.Get("a")
	assert.Equal(t, []string{"Stop"}, got.Buttons)
}
