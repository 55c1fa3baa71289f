package input

// Lookup tables for escape-sequence decoding. Kept as data so the decoder
// proper stays a small state machine.

// tildeKeys maps the numeric code of a CSI ... ~ sequence to its key.
// Codes outside this table (Insert, PageUp/PageDown, ...) surface as
// KeyUnknown so callers can observe them without the decoder growing an
// open-ended key set.
var tildeKeys = map[int]Key{
	1:  KeyHome,
	4:  KeyEnd,
	7:  KeyHome,
	8:  KeyEnd,
	3:  KeyDelete,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// ss3Keys maps the letter of an ESC O sequence to its key.
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'M': KeyEnter, // application-keypad Enter
}

// enterVariants normalizes the fixed byte strings some terminals send for
// modified Enter. Checked before general escape parsing; the Kitty and
// modifyOtherKeys encodings of Enter go through the CSI path instead.
var enterVariants = []struct {
	seq  string
	mods Mod
}{
	{"\x1b\r", ModAlt}, // legacy Option+Enter
	{"\x1bOM", ModNone},
}

// xtermMods decodes the xterm modifier parameter: encoded value minus one
// is a bitmask over shift/alt/ctrl/meta.
func xtermMods(v int) Mod {
	if v <= 1 {
		return ModNone
	}
	bits := v - 1
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	if bits&8 != 0 {
		m |= ModMeta
	}
	return m
}

// kittyMods decodes the Kitty keyboard protocol modifier parameter. The
// lock bits (caps lock, num lock) are masked out before matching.
func kittyMods(v int) Mod {
	if v <= 1 {
		return ModNone
	}
	bits := (v - 1) &^ (64 | 128)
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	if bits&8 != 0 {
		m |= ModCmd // "super"
	}
	if bits&(16|32) != 0 {
		m |= ModMeta // hyper and meta collapse
	}
	return m
}

// keyFromCodepoint maps a Kitty/modifyOtherKeys codepoint to a key.
func keyFromCodepoint(cp int) (Key, rune) {
	switch cp {
	case 8, 127:
		return KeyBackspace, 0
	case 9:
		return KeyTab, 0
	case 10, 13:
		return KeyEnter, 0
	case 27:
		return KeyEscape, 0
	}
	if cp >= 0x20 {
		return KeyRune, rune(cp)
	}
	return KeyNone, 0
}

// controlEvent classifies a byte below 0x20. Letters map onto Ctrl+rune;
// the line-editing controls keep their dedicated keys.
func controlEvent(b byte) Event {
	switch b {
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	case 0x00:
		return Event{Type: EventKey, Key: KeyRune, Rune: ' ', Mods: ModCtrl}
	case 0x1c:
		return Event{Type: EventKey, Key: KeyRune, Rune: '\\', Mods: ModCtrl}
	case 0x1d:
		return Event{Type: EventKey, Key: KeyRune, Rune: ']', Mods: ModCtrl}
	case 0x1e:
		return Event{Type: EventKey, Key: KeyRune, Rune: '^', Mods: ModCtrl}
	case 0x1f:
		return Event{Type: EventKey, Key: KeyRune, Rune: '_', Mods: ModCtrl}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyRune, Rune: rune('a' + b - 1), Mods: ModCtrl}
	}
	return Event{Type: EventKey, Key: KeyUnknown, Text: string(rune(b))}
}
