package ansi

import "strings"

// StyleState tracks the SGR attributes left active by the style sequences
// seen so far in a line. The wrapper replays every sequence it scans through
// an instance so continuation lines can reopen the active style and closed
// lines can switch off exactly what they left on.
type StyleState struct {
	Bold          bool
	Faint         bool
	Italic        bool
	Underline     bool
	Blink         bool
	Inverse       bool
	Hidden        bool
	Strikethrough bool

	// Foreground and Background hold the raw SGR parameters that set the
	// color ("31", "38;5;196", "48;2;10;20;30", ...), or "" when default.
	Foreground string
	Background string
}

// Reset clears every flag and both colors, the effect of SGR 0.
func (s *StyleState) Reset() {
	*s = StyleState{}
}

// IsZero reports whether no attribute is active.
func (s *StyleState) IsZero() bool {
	return *s == StyleState{}
}

// Observe replays every SGR sequence embedded in text through the state.
func (s *StyleState) Observe(text string) {
	for i := 0; i < len(text); {
		if text[i] != 0x1b {
			i++
			continue
		}
		n := seqLen(text[i:])
		if n == 0 {
			return
		}
		seq := text[i : i+n]
		if strings.HasPrefix(seq, CSI) && strings.HasSuffix(seq, "m") {
			s.Apply(seq[2 : len(seq)-1])
		}
		i += n
	}
}

// Apply interprets one SGR parameter string (the text between CSI and "m").
// An empty parameter list resets, matching terminal behavior.
func (s *StyleState) Apply(params string) {
	if params == "" {
		s.Reset()
		return
	}
	parts := strings.Split(params, ";")
	for i := 0; i < len(parts); i++ {
		// Sub-parameters (4:3 style underlines) fold into their base code.
		p := parts[i]
		if idx := strings.IndexByte(p, ':'); idx >= 0 {
			p = p[:idx]
		}
		switch p {
		case "", "0":
			s.Reset()
		case "1":
			s.Bold = true
		case "2":
			s.Faint = true
		case "3":
			s.Italic = true
		case "4":
			s.Underline = true
		case "5":
			s.Blink = true
		case "7":
			s.Inverse = true
		case "8":
			s.Hidden = true
		case "9":
			s.Strikethrough = true
		case "22":
			s.Bold, s.Faint = false, false
		case "23":
			s.Italic = false
		case "24":
			s.Underline = false
		case "25":
			s.Blink = false
		case "27":
			s.Inverse = false
		case "28":
			s.Hidden = false
		case "29":
			s.Strikethrough = false
		case "38":
			if color, skip := extendedColor(parts[i:]); skip > 0 {
				s.Foreground = color
				i += skip - 1
			}
		case "48":
			if color, skip := extendedColor(parts[i:]); skip > 0 {
				s.Background = color
				i += skip - 1
			}
		case "39":
			s.Foreground = ""
		case "49":
			s.Background = ""
		default:
			if len(p) == 2 && ((p[0] == '3' || p[0] == '9') && p[1] >= '0' && p[1] <= '7') {
				s.Foreground = p
			} else if (len(p) == 2 && p[0] == '4' && p[1] >= '0' && p[1] <= '7') ||
				(len(p) == 3 && p[0] == '1' && p[1] == '0' && p[2] >= '0' && p[2] <= '7') {
				s.Background = p
			}
			// Unknown codes are ignored; terminals do the same.
		}
	}
}

// extendedColor consumes a 38/48 extended color parameter run from parts
// and returns the joined parameter string plus the number of parts it
// spans. Returns 0 when the run is malformed.
func extendedColor(parts []string) (string, int) {
	if len(parts) < 2 {
		return "", 0
	}
	switch parts[1] {
	case "5":
		if len(parts) < 3 {
			return "", 0
		}
		return strings.Join(parts[:3], ";"), 3
	case "2":
		if len(parts) < 5 {
			return "", 0
		}
		return strings.Join(parts[:5], ";"), 5
	}
	return "", 0
}

// Sequence returns the escape sequence that reinstates the active
// attributes on a fresh line, or "" when nothing is active.
func (s *StyleState) Sequence() string {
	if s.IsZero() {
		return ""
	}
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Faint {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Blink {
		codes = append(codes, "5")
	}
	if s.Inverse {
		codes = append(codes, "7")
	}
	if s.Hidden {
		codes = append(codes, "8")
	}
	if s.Strikethrough {
		codes = append(codes, "9")
	}
	if s.Foreground != "" {
		codes = append(codes, s.Foreground)
	}
	if s.Background != "" {
		codes = append(codes, s.Background)
	}
	return CSI + strings.Join(codes, ";") + "m"
}

// CloseSequence returns the sequence that switches off exactly the active
// attributes. It deliberately avoids SGR 0 so styles opened outside the
// tracked span (a document-level background, say) survive the close.
func (s *StyleState) CloseSequence() string {
	if s.IsZero() {
		return ""
	}
	var codes []string
	if s.Bold || s.Faint {
		codes = append(codes, "22")
	}
	if s.Italic {
		codes = append(codes, "23")
	}
	if s.Underline {
		codes = append(codes, "24")
	}
	if s.Blink {
		codes = append(codes, "25")
	}
	if s.Inverse {
		codes = append(codes, "27")
	}
	if s.Hidden {
		codes = append(codes, "28")
	}
	if s.Strikethrough {
		codes = append(codes, "29")
	}
	if s.Foreground != "" {
		codes = append(codes, "39")
	}
	if s.Background != "" {
		codes = append(codes, "49")
	}
	return CSI + strings.Join(codes, ";") + "m"
}

// ApplyBackground lays bg (an SGR background parameter such as "48;5;236")
// under an already-rendered line. Any embedded full reset or background
// reset is re-followed by the fill so it cannot punch a hole in it.
func ApplyBackground(line, bg string) string {
	open := CSI + bg + "m"
	var b strings.Builder
	b.Grow(len(line) + 2*len(open))
	b.WriteString(open)
	for i := 0; i < len(line); {
		if line[i] != 0x1b {
			b.WriteByte(line[i])
			i++
			continue
		}
		n := seqLen(line[i:])
		if n == 0 {
			b.WriteString(line[i:])
			break
		}
		seq := line[i : i+n]
		b.WriteString(seq)
		if strings.HasPrefix(seq, CSI) && strings.HasSuffix(seq, "m") && resetsBackground(seq[2:len(seq)-1]) {
			b.WriteString(open)
		}
		i += n
	}
	return b.String()
}

// resetsBackground reports whether an SGR parameter list clears the
// background: a full reset, an empty list, or an explicit 49.
func resetsBackground(params string) bool {
	if params == "" {
		return true
	}
	for _, p := range strings.Split(params, ";") {
		if p == "" || p == "0" || p == "49" {
			return true
		}
	}
	return false
}
