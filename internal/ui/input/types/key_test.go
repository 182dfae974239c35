package types

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Event
	}{
		{"down", KeyPress(KeyDown)},
		{"esc", KeyPress(KeyEsc)},
		{"escape", KeyPress(KeyEsc)},
		{"shift+up", KeyPress(KeyUp, Modifiers{Shift: true})},
		{"ctrl+r", Event{Key: KeyRune, Rune: 'r', Mods: Modifiers{Ctrl: true}}},
		{"ctrl+shift+left", KeyPress(KeyLeft, Modifiers{Ctrl: true, Shift: true})},
		{"a", Char('a')},
		{"+", Char('+')},
		{"é", Char('é')},
		{" ", KeyPress(KeySpace)},
		{"space", KeyPress(KeySpace)},
		{"f5", KeyPress(Key("f5"))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	_, err := ParseKey("")
	assert.Error(t, err)
	_, err = ParseKey("banana")
	assert.Error(t, err)
}

func TestStringMatchesBubbleteaNames(t *testing.T) {
	assert.Equal(t, "up", KeyPress(KeyUp).String())
	assert.Equal(t, "shift+up", KeyPress(KeyUp, Modifiers{Shift: true}).String())
	assert.Equal(t, "ctrl+c", Event{Key: KeyRune, Rune: 'c', Mods: Modifiers{Ctrl: true}}.String())
	assert.Equal(t, "alt+x", Event{Key: KeyRune, Rune: 'x', Mods: Modifiers{Alt: true}}.String())
	assert.Equal(t, " ", KeyPress(KeySpace).String())
	assert.Equal(t, "A", Char('A').String())
}

func TestFromKeyMsg(t *testing.T) {
	ev, ok := FromKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	require.True(t, ok)
	assert.Equal(t, KeyPress(KeyDown), ev)

	ev, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeyShiftUp})
	require.True(t, ok)
	assert.Equal(t, KeyPress(KeyUp, Modifiers{Shift: true}), ev)

	ev, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.True(t, ok)
	assert.Equal(t, Char('q'), ev)

	ev, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, ok)
	assert.Equal(t, Event{Key: KeyRune, Rune: 'r', Mods: Modifiers{Ctrl: true}}, ev)

	ev, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, ok)
	assert.Equal(t, KeyPress(KeySpace), ev)

	_, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello"), Paste: true})
	assert.False(t, ok)
}

func TestEventsMatchKeyBindings(t *testing.T) {
	km := DefaultKeyMap()
	assert.True(t, key.Matches(KeyPress(KeyEnter), km.Activate))
	assert.True(t, key.Matches(KeyPress(KeySpace), km.Activate))
	assert.True(t, key.Matches(KeyPress(KeyEsc), km.Cancel))
	assert.False(t, key.Matches(KeyPress(KeyUp, Modifiers{Shift: true}), km.Up))
}

func TestIsChar(t *testing.T) {
	assert.True(t, Char('x').IsChar())
	assert.False(t, Event{Key: KeyRune, Rune: 'x', Mods: Modifiers{Ctrl: true}}.IsChar())
	assert.False(t, KeyPress(KeyDown).IsChar())
}

type fakeNav struct {
	calls  []string
	typed  []rune
	active bool
}

func (f *fakeNav) Name() string { return "fake" }
func (f *fakeNav) IsActive() bool { return f.active }
func (f *fakeNav) HandleKey(ev Event) bool { return Route(f, ev, DefaultKeyMap()) }
func (f *fakeNav) Up() bool { f.calls = append(f.calls, "up"); return true }
func (f *fakeNav) Down() bool { f.calls = append(f.calls, "down"); return true }
func (f *fakeNav) Left() bool { f.calls = append(f.calls, "left"); return true }
func (f *fakeNav) Right() bool { f.calls = append(f.calls, "right"); return true }
func (f *fakeNav) Activate() bool { f.calls = append(f.calls, "activate"); return true }
func (f *fakeNav) Cancel() { f.calls = append(f.calls, "cancel"); f.active = false }
func (f *fakeNav) Announcement() string { return "" }
func (f *fakeNav) TypeChar(r rune) bool { f.typed = append(f.typed, r); return true }
func (f *fakeNav) Backspace() bool { f.calls = append(f.calls, "backspace"); return true }

func TestRoute(t *testing.T) {
	f := &fakeNav{active: true}
	for _, name := range []string{"up", "down", "left", "right", "enter", "b", "backspace", "esc"} {
		ev, err := ParseKey(name)
		require.NoError(t, err)
		assert.True(t, f.HandleKey(ev), name)
	}
	assert.Equal(t, []string{"up", "down", "left", "right", "activate", "backspace", "cancel"}, f.calls)
	assert.Equal(t, []rune{'b'}, f.typed)
	assert.False(t, f.active)

	assert.False(t, f.HandleKey(KeyPress(KeyTab)))
}
