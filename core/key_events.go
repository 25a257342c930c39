package core

import (
	"fmt"
	"strings"
)

// KeyCode names a key that does not type a character.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome // start of the visual line
	KeyEnd  // end of the visual line
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
)

var keyNames = [...]string{
	KeyUnknown:   "Unknown",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
}

func (c KeyCode) String() string {
	if c >= 0 && int(c) < len(keyNames) {
		return keyNames[c]
	}
	return fmt.Sprintf("SpecialKey(%d)", int(c))
}

// KeyModifiers is the set of modifiers held with a key.
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

var modifierNames = []struct {
	mod  KeyModifiers
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
}

// KeyEvent is one keystroke. Rune is zero for the keys named by Key.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// Ctrl reports whether the event is Ctrl held with the rune r.
func (k KeyEvent) Ctrl(r rune) bool {
	return k.Modifiers&ModCtrl != 0 && k.Rune == r
}

// Shift reports whether Shift was held.
func (k KeyEvent) Shift() bool {
	return k.Modifiers&ModShift != 0
}

// Printable reports whether the event types a character.
func (k KeyEvent) Printable() bool {
	return k.Rune != 0 && k.Modifiers&(ModCtrl|ModAlt) == 0
}

// String joins the modifiers and the key with "+", as in "Ctrl+Shift+x".
func (k KeyEvent) String() string {
	var parts []string
	for _, m := range modifierNames {
		if k.Modifiers&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		parts = append(parts, k.Key.String())
	}
	return strings.Join(parts, "+")
}
