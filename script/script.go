// Package script is the deterministic replay surface: typed event scripts
// executed against the in-memory transport, with the final viewport and the
// full write log exposed for assertions.
package script

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"termkit/ansi"
)

// Step is one scripted event. Exactly one of the event fields must be set.
type Step struct {
	Key    string   `yaml:"key,omitempty"`
	Mods   []string `yaml:"mods,omitempty"`
	Paste  string   `yaml:"paste,omitempty"`
	Raw    string   `yaml:"raw,omitempty"`
	Resize *Size    `yaml:"resize,omitempty"`
	Sleep  int      `yaml:"sleep,omitempty"` // milliseconds
}

// Size is a resize target in cells.
type Size struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Parse reads a YAML step list and validates it.
func Parse(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i, s := range steps {
		set := 0
		if s.Key != "" {
			set++
		}
		if s.Paste != "" {
			set++
		}
		if s.Raw != "" {
			set++
		}
		if s.Resize != nil {
			set++
		}
		if s.Sleep > 0 {
			set++
		}
		if set != 1 {
			return nil, fmt.Errorf("script: step %d must set exactly one of key/paste/raw/resize/sleep", i+1)
		}
		if len(s.Mods) > 0 && s.Key == "" {
			return nil, fmt.Errorf("script: step %d has mods without a key", i+1)
		}
		if s.Key != "" {
			if _, err := Encode(s.Key, s.Mods); err != nil {
				return nil, fmt.Errorf("script: step %d: %w", i+1, err)
			}
		}
	}
	return steps, nil
}

// Load reads and parses a script file.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// modFlag is a dialect-neutral modifier set. The xterm and Kitty wire
// encodings disagree on the bit positions above ctrl, so the named
// modifiers are parsed once and converted per encoding path.
type modFlag int

const (
	flagShift modFlag = 1 << iota
	flagAlt
	flagCtrl
	flagCmd
	flagMeta
)

func parseMods(mods []string) (modFlag, error) {
	var f modFlag
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "shift":
			f |= flagShift
		case "alt", "option":
			f |= flagAlt
		case "ctrl", "control":
			f |= flagCtrl
		case "cmd", "command", "super":
			f |= flagCmd
		case "meta":
			f |= flagMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", m)
		}
	}
	return f, nil
}

// xtermBits converts to the xterm modifier bitmask: shift 1, alt 2,
// ctrl 4, meta 8. The cmd/super modifier has no xterm encoding.
func xtermBits(f modFlag) (int, error) {
	if f&flagCmd != 0 {
		return 0, fmt.Errorf("cmd has no xterm-form encoding")
	}
	bits := 0
	if f&flagShift != 0 {
		bits |= 1
	}
	if f&flagAlt != 0 {
		bits |= 2
	}
	if f&flagCtrl != 0 {
		bits |= 4
	}
	if f&flagMeta != 0 {
		bits |= 8
	}
	return bits, nil
}

// kittyBits converts to the Kitty modifier bitmask: shift 1, alt 2,
// ctrl 4, super 8, meta 32.
func kittyBits(f modFlag) int {
	bits := 0
	if f&flagShift != 0 {
		bits |= 1
	}
	if f&flagAlt != 0 {
		bits |= 2
	}
	if f&flagCtrl != 0 {
		bits |= 4
	}
	if f&flagCmd != 0 {
		bits |= 8
	}
	if f&flagMeta != 0 {
		bits |= 32
	}
	return bits
}

// cursorKeys maps semantic names to the CSI final byte of cursor keys.
var cursorKeys = map[string]byte{
	"up":    'A',
	"down":  'B',
	"left":  'D',
	"right": 'C',
	"home":  'H',
	"end":   'F',
}

// fnCodes maps function keys to their CSI ~ numeric code.
var fnCodes = map[string]int{
	"f1": 11, "f2": 12, "f3": 13, "f4": 14, "f5": 15, "f6": 17,
	"f7": 18, "f8": 19, "f9": 20, "f10": 21, "f11": 23, "f12": 24,
	"delete": 3,
}

// Encode turns a semantic key name plus modifier list into the byte
// sequence a terminal would send for it. Cursor and function keys use the
// xterm modifier encoding; keys without a modified legacy form go out in
// the Kitty encoding.
func Encode(name string, mods []string) (string, error) {
	f, err := parseMods(mods)
	if err != nil {
		return "", err
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := map[string]string{"esc": "escape", "return": "enter", "del": "delete"}[name]; ok {
		name = alias
	}

	if final, ok := cursorKeys[name]; ok {
		bits, err := xtermBits(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		if bits == 0 {
			return ansi.CSI + string(final), nil
		}
		return fmt.Sprintf("%s1;%d%c", ansi.CSI, bits+1, final), nil
	}
	if code, ok := fnCodes[name]; ok {
		bits, err := xtermBits(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		if bits == 0 {
			return fmt.Sprintf("%s%d~", ansi.CSI, code), nil
		}
		return fmt.Sprintf("%s%d;%d~", ansi.CSI, code, bits+1), nil
	}

	switch name {
	case "enter":
		if f == 0 {
			return "\r", nil
		}
		return kitty(13, kittyBits(f)), nil
	case "tab":
		switch f {
		case 0:
			return "\t", nil
		case flagShift:
			return ansi.CSI + "Z", nil
		}
		return kitty(9, kittyBits(f)), nil
	case "backspace":
		switch f {
		case 0:
			return "\x7f", nil
		case flagAlt:
			return "\x1b\x7f", nil
		}
		return kitty(127, kittyBits(f)), nil
	case "escape":
		// A bare ESC byte would sit in the decoder as a pending prefix,
		// so escapes always go out in the unambiguous Kitty form.
		return kitty(27, kittyBits(f)), nil
	}

	// Single printable character.
	runes := []rune(name)
	if len(runes) != 1 {
		return "", fmt.Errorf("unknown key %q", name)
	}
	r := runes[0]
	switch {
	case f == 0:
		return string(r), nil
	case f == flagCtrl && r >= 'a' && r <= 'z':
		return string(rune(r - 'a' + 1)), nil
	case f == flagAlt:
		return "\x1b" + string(r), nil
	case f == flagCtrl|flagAlt && r >= 'a' && r <= 'z':
		return "\x1b" + string(rune(r-'a'+1)), nil
	}
	return kitty(int(r), kittyBits(f)), nil
}

func kitty(codepoint, bits int) string {
	if bits == 0 {
		return ansi.CSI + strconv.Itoa(codepoint) + "u"
	}
	return fmt.Sprintf("%s%d;%du", ansi.CSI, codepoint, bits+1)
}

// EncodeStep renders a step's on-the-wire bytes; resize and sleep steps
// have none.
func EncodeStep(s Step) (string, error) {
	switch {
	case s.Key != "":
		return Encode(s.Key, s.Mods)
	case s.Paste != "":
		return ansi.PasteStart + s.Paste + ansi.PasteEnd, nil
	case s.Raw != "":
		return s.Raw, nil
	}
	return "", nil
}

// Describe returns a short human-readable form of a step for logs.
func Describe(s Step) string {
	switch {
	case s.Key != "":
		if len(s.Mods) > 0 {
			return strings.Join(s.Mods, "+") + "+" + s.Key
		}
		return s.Key
	case s.Paste != "":
		return fmt.Sprintf("paste %q", s.Paste)
	case s.Raw != "":
		return fmt.Sprintf("raw %q", s.Raw)
	case s.Resize != nil:
		return fmt.Sprintf("resize %dx%d", s.Resize.Cols, s.Resize.Rows)
	case s.Sleep > 0:
		return fmt.Sprintf("sleep %dms", s.Sleep)
	}
	return "noop"
}
