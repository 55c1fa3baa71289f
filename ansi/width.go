package ansi

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// StringWidth returns the number of terminal columns the string occupies.
// Escape sequences contribute nothing, tabs count as TabWidth columns, and
// wide/combining glyphs are measured per grapheme.
func StringWidth(s string) int {
	return runewidth.StringWidth(expandTabs(Strip(s)))
}

// Strip removes every escape sequence from s, leaving only visible text.
func Strip(s string) string {
	if !strings.Contains(s, ESC) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			n := seqLen(s[i:])
			if n == 0 {
				// Truncated trailing escape: nothing visible follows.
				break
			}
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}

// seqLen returns the byte length of the escape sequence at the start of s,
// or 0 if s holds only an unterminated prefix. s must begin with ESC.
func seqLen(s string) int {
	if len(s) < 2 {
		return 0
	}
	switch s[1] {
	case '[':
		// CSI: parameters 0x30-0x3F, intermediates 0x20-0x2F, final 0x40-0x7E.
		for i := 2; i < len(s); i++ {
			b := s[i]
			if b >= 0x40 && b <= 0x7e {
				return i + 1
			}
			if b < 0x20 || b > 0x3f {
				// Malformed: treat everything scanned so far as the sequence.
				return i
			}
		}
		return 0
	case ']':
		// OSC: terminated by BEL or ST (ESC \).
		for i := 2; i < len(s); i++ {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return 0
	default:
		// Two-byte escape (SS3 introducers and friends consume one more).
		if s[1] == 'O' && len(s) >= 3 {
			return 3
		}
		return 2
	}
}
