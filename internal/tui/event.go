package tui

import "fmt"

// Key identifies a decoded input event.
type Key int

const (
	KeyNone Key = iota
	KeyCancel
	KeyUp
	KeyDown
	KeyTab
	KeyEnter
	KeyBackspace
	KeySpace
	KeyRune
	KeyClear
	KeyResize
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyCancel:    "cancel",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeySpace:     "space",
	KeyRune:      "rune",
	KeyClear:     "clear",
	KeyResize:    "resize",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Event is one input event, decoded once at the surface boundary.
// Rune is set only for KeyRune.
type Event struct {
	Key  Key
	Rune rune
}

// Rune returns a KeyRune event for r.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

func (e Event) String() string {
	if e.Key == KeyRune {
		return fmt.Sprintf("rune(%q)", e.Rune)
	}
	return e.Key.String()
}
