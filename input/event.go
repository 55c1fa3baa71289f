// Package input turns a chunked terminal byte stream into typed,
// modifier-aware events. The decoder is a pure state machine: it never
// blocks, never fails, and produces the same event list no matter how the
// stream is split across Feed calls.
package input

// EventType distinguishes input event categories.
type EventType uint8

const (
	EventKey EventType = iota
	EventPaste
	EventRaw
	EventResize
	EventCellSize
)

// Event is one semantic input unit. Exactly one is produced per logical
// input; ordering matches the byte stream.
type Event struct {
	Type EventType
	Key  Key
	Rune rune // printable character when Key == KeyRune
	Mods Mod

	// Text carries the paste body for EventPaste, the raw bytes for
	// EventRaw, and the unrecognized sequence for Key == KeyUnknown.
	Text string

	// Pixel cell dimensions for EventCellSize.
	WidthPx  int
	HeightPx int
}

// Key identifies a decoded key. The set is closed; anything the decoder
// cannot classify arrives as KeyUnknown with the raw sequence in Text.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // printable character, see Event.Rune

	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyUnknown
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEscape:    "escape",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyUnknown:   "unknown",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "none"
}

// Mod is a bitset of key modifiers. Several may be set at once.
type Mod uint8

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2 // Option on macOS keyboards
	ModCmd   Mod = 1 << 3
	ModMeta  Mod = 1 << 4
)

func (m Mod) String() string {
	if m == ModNone {
		return "none"
	}
	var s string
	add := func(name string) {
		if s != "" {
			s += "+"
		}
		s += name
	}
	if m&ModShift != 0 {
		add("shift")
	}
	if m&ModCtrl != 0 {
		add("ctrl")
	}
	if m&ModAlt != 0 {
		add("alt")
	}
	if m&ModCmd != 0 {
		add("cmd")
	}
	if m&ModMeta != 0 {
		add("meta")
	}
	return s
}
