package input

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"termkit/ansi"
)

// Decoder reassembles semantic input events out of a chunked terminal byte
// stream. One instance owns its buffer state; callers must serialize Feed
// calls. Malformed input never fails: unrecognized sequences degrade to
// KeyUnknown events carrying the raw text, and unterminated prefixes are
// buffered until the next chunk.
type Decoder struct {
	// RawMode bypasses parsing and passes chunks through as EventRaw.
	// Debug facility only.
	RawMode bool

	pending []byte
	inPaste bool
	paste   bytes.Buffer
}

// NewDecoder returns a decoder ready to consume a fresh input stream.
func NewDecoder() *Decoder {
	return &Decoder{pending: make([]byte, 0, 256)}
}

// maxSequenceLen bounds how long an escape sequence may grow before the
// decoder gives up and surfaces it as unknown, keeping pending input small.
const maxSequenceLen = 64

var (
	pasteStartBytes = []byte(ansi.PasteStart)
	pasteEndBytes   = []byte(ansi.PasteEnd)
)

// Feed accepts one arbitrarily sized chunk of raw input and returns every
// event that is now fully resolved. It never blocks.
func (d *Decoder) Feed(chunk string) []Event {
	if d.RawMode {
		if chunk == "" {
			return nil
		}
		return []Event{{Type: EventRaw, Text: chunk}}
	}

	d.pending = append(d.pending, chunk...)
	var evs []Event
	for len(d.pending) > 0 {
		if d.inPaste {
			if !d.drainPaste(&evs) {
				break
			}
			continue
		}
		n, ev, emit := d.next()
		if n == 0 {
			break // incomplete sequence at buffer head, wait for more bytes
		}
		if emit {
			evs = append(evs, ev)
		}
		d.consume(n)
	}
	return evs
}

func (d *Decoder) consume(n int) {
	if n >= len(d.pending) {
		d.pending = d.pending[:0]
		return
	}
	copy(d.pending, d.pending[n:])
	d.pending = d.pending[:len(d.pending)-n]
}

// drainPaste accumulates paste text until the end marker arrives, emitting
// exactly one Paste event for the whole region. Returns false when more
// bytes are needed.
func (d *Decoder) drainPaste(evs *[]Event) bool {
	if idx := bytes.Index(d.pending, pasteEndBytes); idx >= 0 {
		d.paste.Write(d.pending[:idx])
		*evs = append(*evs, Event{Type: EventPaste, Text: d.paste.String()})
		d.paste.Reset()
		d.inPaste = false
		d.consume(idx + len(pasteEndBytes))
		return true
	}
	// Everything except a possible partial end marker at the tail is
	// definitely paste text.
	keep := partialSuffix(d.pending, pasteEndBytes)
	d.paste.Write(d.pending[:len(d.pending)-keep])
	d.consume(len(d.pending) - keep)
	return false
}

// partialSuffix returns the length of the longest suffix of buf that is a
// proper prefix of marker.
func partialSuffix(buf, marker []byte) int {
	max := len(marker) - 1
	if max > len(buf) {
		max = len(buf)
	}
	for k := max; k > 0; k-- {
		if bytes.Equal(buf[len(buf)-k:], marker[:k]) {
			return k
		}
	}
	return 0
}

// next parses one logical unit from the buffer head. It returns the number
// of bytes consumed (0 when the head is an incomplete sequence), the event,
// and whether the event should be emitted.
func (d *Decoder) next() (int, Event, bool) {
	if d.pending[0] != 0x1b {
		return d.nextPlain()
	}

	if bytes.HasPrefix(d.pending, pasteStartBytes) {
		d.inPaste = true
		return len(pasteStartBytes), Event{}, false
	}

	for _, v := range enterVariants {
		if len(d.pending) >= len(v.seq) && string(d.pending[:len(v.seq)]) == v.seq {
			return len(v.seq), Event{Type: EventKey, Key: KeyEnter, Mods: v.mods}, true
		}
	}

	if len(d.pending) < 2 {
		return 0, Event{}, false
	}

	switch b1 := d.pending[1]; {
	case b1 == '[':
		return d.parseCSI()
	case b1 == 'O':
		return d.parseSS3()
	case b1 == 0x1b:
		// Two escapes back to back: resolve the first, reprocess the rest.
		return 1, Event{Type: EventKey, Key: KeyEscape}, true
	case b1 < 0x20:
		ev := controlEvent(b1)
		ev.Mods |= ModAlt
		return 2, ev, true
	case b1 == 0x7f:
		return 2, Event{Type: EventKey, Key: KeyBackspace, Mods: ModAlt}, true
	default:
		// Meta prefix: ESC followed by a printable rune means Option/Alt.
		if !utf8.FullRune(d.pending[1:]) {
			return 0, Event{}, false
		}
		r, size := utf8.DecodeRune(d.pending[1:])
		if r == utf8.RuneError && size == 1 {
			return 2, Event{Type: EventKey, Key: KeyUnknown, Text: string(d.pending[:2])}, true
		}
		return 1 + size, Event{Type: EventKey, Key: KeyRune, Rune: r, Mods: ModAlt}, true
	}
}

// nextPlain consumes one non-escape character.
func (d *Decoder) nextPlain() (int, Event, bool) {
	b := d.pending[0]
	switch {
	case b < 0x20:
		return 1, controlEvent(b), true
	case b == 0x7f:
		return 1, Event{Type: EventKey, Key: KeyBackspace}, true
	case b < 0x80:
		return 1, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}, true
	}
	if !utf8.FullRune(d.pending) {
		return 0, Event{}, false
	}
	r, size := utf8.DecodeRune(d.pending)
	if r == utf8.RuneError && size == 1 {
		return 1, Event{Type: EventKey, Key: KeyUnknown, Text: string(d.pending[:1])}, true
	}
	return size, Event{Type: EventKey, Key: KeyRune, Rune: r}, true
}

// parseCSI scans for the final byte of a CSI sequence and decodes it.
func (d *Decoder) parseCSI() (int, Event, bool) {
	buf := d.pending
	limit := len(buf)
	if limit > maxSequenceLen {
		limit = maxSequenceLen
	}
	for i := 2; i < limit; i++ {
		b := buf[i]
		if b >= 0x40 && b <= 0x7e {
			ev := decodeCSI(buf[:i+1])
			return i + 1, ev, true
		}
		if b < 0x20 || b > 0x3f {
			// Not a valid parameter or intermediate byte: surface the
			// scanned prefix as unknown rather than stalling the stream.
			return i + 1, unknownEvent(buf[:i+1]), true
		}
	}
	if len(buf) >= maxSequenceLen {
		return limit, unknownEvent(buf[:limit]), true
	}
	return 0, Event{}, false
}

// parseSS3 handles ESC O sequences.
func (d *Decoder) parseSS3() (int, Event, bool) {
	if len(d.pending) < 3 {
		return 0, Event{}, false
	}
	if key, ok := ss3Keys[d.pending[2]]; ok {
		return 3, Event{Type: EventKey, Key: key}, true
	}
	return 3, unknownEvent(d.pending[:3]), true
}

func unknownEvent(seq []byte) Event {
	return Event{Type: EventKey, Key: KeyUnknown, Text: string(seq)}
}

// decodeCSI interprets one complete CSI sequence. seq includes the leading
// ESC [ and the final byte.
func decodeCSI(seq []byte) Event {
	body := string(seq[2 : len(seq)-1])
	final := seq[len(seq)-1]

	// Private-parameter sequences (mouse reports, mode acks) are not keys.
	if body != "" && (body[0] == '<' || body[0] == '=' || body[0] == '>' || body[0] == '?') {
		return unknownEvent(seq)
	}

	p := csiParams(strings.Split(body, ";"))

	switch final {
	case 'A':
		return Event{Type: EventKey, Key: KeyUp, Mods: xtermMods(p.num(1, 1))}
	case 'B':
		return Event{Type: EventKey, Key: KeyDown, Mods: xtermMods(p.num(1, 1))}
	case 'C':
		return Event{Type: EventKey, Key: KeyRight, Mods: xtermMods(p.num(1, 1))}
	case 'D':
		return Event{Type: EventKey, Key: KeyLeft, Mods: xtermMods(p.num(1, 1))}
	case 'H':
		return Event{Type: EventKey, Key: KeyHome, Mods: xtermMods(p.num(1, 1))}
	case 'F':
		return Event{Type: EventKey, Key: KeyEnd, Mods: xtermMods(p.num(1, 1))}
	case 'Z':
		return Event{Type: EventKey, Key: KeyTab, Mods: ModShift}
	case '~':
		code := p.num(0, 0)
		if code == 27 {
			// xterm modifyOtherKeys: CSI 27 ; mods ; codepoint ~
			key, r := keyFromCodepoint(p.num(2, 0))
			if key == KeyNone {
				return unknownEvent(seq)
			}
			return Event{Type: EventKey, Key: key, Rune: r, Mods: xtermMods(p.num(1, 1))}
		}
		if key, ok := tildeKeys[code]; ok {
			return Event{Type: EventKey, Key: key, Mods: xtermMods(p.num(1, 1))}
		}
		return unknownEvent(seq)
	case 'u':
		// Kitty keyboard protocol: CSI codepoint ; mods u
		key, r := keyFromCodepoint(p.num(0, 0))
		if key == KeyNone {
			return unknownEvent(seq)
		}
		return Event{Type: EventKey, Key: key, Rune: r, Mods: kittyMods(p.num(1, 1))}
	case 't':
		// Cell-size report: CSI 6 ; height ; width t
		if p.num(0, 0) == 6 {
			return Event{Type: EventCellSize, HeightPx: p.num(1, 0), WidthPx: p.num(2, 0)}
		}
		return unknownEvent(seq)
	}
	return unknownEvent(seq)
}

// csiParams provides defaulted numeric access to split CSI parameters.
// Kitty-style ":" sub-parameters fold into their base value.
type csiParams []string

func (p csiParams) num(i, def int) int {
	if i >= len(p) || p[i] == "" {
		return def
	}
	s := p[i]
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		s = s[:idx]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
