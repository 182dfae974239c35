package types

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Key identifies a physical key independent of the host toolkit
type Key string

const (
	KeyRune      Key = "rune" // a printable character, see Event.Rune
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyEnter     Key = "enter"
	KeyEsc       Key = "esc"
	KeyBackspace Key = "backspace"
	KeyDelete    Key = "delete"
	KeyTab       Key = "tab"
	KeySpace     Key = "space"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeyPgUp      Key = "pgup"
	KeyPgDown    Key = "pgdown"
	KeyInsert    Key = "insert"
)

var namedKeys = map[string]Key{
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"enter":     KeyEnter,
	"esc":       KeyEsc,
	"escape":    KeyEsc,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"tab":       KeyTab,
	" ":         KeySpace,
	"space":     KeySpace,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pgup":      KeyPgUp,
	"pgdown":    KeyPgDown,
	"insert":    KeyInsert,
}

// Modifiers held during a key press
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// Event is one key-down. It is a value type and is never mutated.
type Event struct {
	Key  Key
	Rune rune
	Mods Modifiers
}

// KeyPress builds an event for a named key
func KeyPress(k Key, mods ...Modifiers) Event {
	ev := Event{Key: k}
	if len(mods) > 0 {
		ev.Mods = mods[0]
	}
	return ev
}

// Char builds an event for a printable character
func Char(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// IsChar reports whether the event types a character, as used by type-ahead
func (e Event) IsChar() bool {
	return e.Key == KeyRune && !e.Mods.Ctrl && !e.Mods.Alt
}

// String renders the event the way bubbletea names keys ("ctrl+shift+up",
// "alt+a", " "), so events can be matched with bubbles key bindings.
func (e Event) String() string {
	var b strings.Builder
	if e.Mods.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Mods.Alt {
		b.WriteString("alt+")
	}
	switch e.Key {
	case KeyRune:
		b.WriteRune(e.Rune)
	case KeySpace:
		if e.Mods.Shift {
			b.WriteString("shift+")
		}
		b.WriteString(" ")
	case "":
		return ""
	default:
		if e.Mods.Shift {
			b.WriteString("shift+")
		}
		b.WriteString(string(e.Key))
	}
	return b.String()
}

// ParseKey parses a bubbletea-style key name such as "down", "shift+tab",
// "ctrl+r" or "a". Named keys also accept "space" and "escape".
func ParseKey(s string) (Event, error) {
	if s == "" {
		return Event{}, fmt.Errorf("empty key")
	}
	if s == " " {
		return KeyPress(KeySpace), nil
	}

	var ev Event
	rest := s
	for {
		prefix, ok := modifierPrefix(rest)
		if !ok {
			break
		}
		switch prefix {
		case "ctrl+":
			ev.Mods.Ctrl = true
		case "alt+":
			ev.Mods.Alt = true
		case "shift+":
			ev.Mods.Shift = true
		}
		rest = rest[len(prefix):]
	}

	if k, ok := namedKeys[strings.ToLower(rest)]; ok {
		ev.Key = k
		return ev, nil
	}
	if isFunctionKey(rest) {
		ev.Key = Key(strings.ToLower(rest))
		return ev, nil
	}
	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		ev.Key = KeyRune
		ev.Rune = r
		return ev, nil
	}
	return Event{}, fmt.Errorf("unknown key %q", s)
}

// FromKeyMsg converts a bubbletea key message. Pastes and other multi-rune
// messages are not single key presses and report false.
func FromKeyMsg(msg tea.KeyMsg) (Event, bool) {
	if msg.Paste {
		return Event{}, false
	}
	if msg.Type == tea.KeySpace {
		return Event{Key: KeySpace, Mods: Modifiers{Alt: msg.Alt}}, true
	}
	ev, err := ParseKey(msg.String())
	if err != nil {
		return Event{}, false
	}
	return ev, true
}

func modifierPrefix(s string) (string, bool) {
	for _, p := range []string{"ctrl+", "alt+", "shift+"} {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return p, true
		}
	}
	return "", false
}

func isFunctionKey(s string) bool {
	if len(s) < 2 || (s[0] != 'f' && s[0] != 'F') {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
