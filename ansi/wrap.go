package ansi

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Wrap splits text on explicit newlines, then word-wraps every resulting
// line to width visible columns. Style sequences are replayed while
// scanning: a line broken by the wrapper is closed with the minimal
// switch-off sequence and its continuation reopens the active attributes,
// so color and emphasis survive the break without bleeding past it.
//
// Every logical line produces at least one output line, so blank input
// lines keep their slot on screen.
func Wrap(text string, width int) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	var st StyleState
	for _, line := range lines {
		out = append(out, wrapLine(line, width, &st)...)
	}
	return out
}

func wrapLine(line string, width int, st *StyleState) []string {
	// Already-short lines pass through untouched, spacing and all.
	if StringWidth(line) <= width {
		st.Observe(line)
		return []string{line}
	}

	w := lineWrapper{width: width, st: st}
	for _, tok := range tokenize(line) {
		w.writeToken(tok)
	}
	w.out = append(w.out, w.cur.String())
	return w.out
}

// lineWrapper accumulates one logical line's worth of wrapped output.
type lineWrapper struct {
	width int
	st    *StyleState
	cur   strings.Builder
	col   int
	out   []string
}

// flush ends the current output line, closing whatever the tracked state
// has open, and primes the next line with the reopening sequence.
func (w *lineWrapper) flush() {
	w.out = append(w.out, w.cur.String()+w.st.CloseSequence())
	w.cur.Reset()
	if reopen := w.st.Sequence(); reopen != "" {
		w.cur.WriteString(reopen)
	}
	w.col = 0
}

func (w *lineWrapper) writeToken(tok string) {
	tw := StringWidth(tok)
	sep := 0
	if w.col > 0 {
		sep = 1
	}
	if w.col+sep+tw <= w.width {
		if sep == 1 {
			w.cur.WriteByte(' ')
		}
		w.cur.WriteString(tok)
		w.st.Observe(tok)
		w.col += sep + tw
		return
	}
	if w.col > 0 {
		w.flush()
	}
	if tw <= w.width {
		w.cur.WriteString(tok)
		w.st.Observe(tok)
		w.col = tw
		return
	}
	w.hardSplit(tok)
}

// hardSplit breaks a token wider than the whole line grapheme by
// grapheme, letting embedded escape sequences ride along at zero width.
func (w *lineWrapper) hardSplit(tok string) {
	for i := 0; i < len(tok); {
		if tok[i] == 0x1b {
			n := seqLen(tok[i:])
			if n == 0 {
				w.cur.WriteString(tok[i:])
				return
			}
			seq := tok[i : i+n]
			w.cur.WriteString(seq)
			if strings.HasPrefix(seq, CSI) && strings.HasSuffix(seq, "m") {
				w.st.Apply(seq[2 : len(seq)-1])
			}
			i += n
			continue
		}
		j := i
		for j < len(tok) && tok[j] != 0x1b {
			j++
		}
		g := uniseg.NewGraphemes(tok[i:j])
		for g.Next() {
			cluster := g.Str()
			cw := runewidth.StringWidth(cluster)
			if w.col > 0 && w.col+cw > w.width {
				w.flush()
			}
			w.cur.WriteString(cluster)
			w.col += cw
		}
		i = j
	}
}

// tokenize splits a line into whitespace-delimited words. Escape sequences
// never delimit: they attach to the word being built, or open the next one
// when they appear inside a run of spaces.
func tokenize(line string) []string {
	var toks []string
	var cur strings.Builder
	for i := 0; i < len(line); {
		b := line[i]
		switch {
		case b == 0x1b:
			n := seqLen(line[i:])
			if n == 0 {
				cur.WriteString(line[i:])
				i = len(line)
				break
			}
			cur.WriteString(line[i : i+n])
			i += n
		case b == ' ' || b == '\t':
			if cur.Len() > 0 {
				toks = append(toks, cur.String())
				cur.Reset()
			}
			i++
		default:
			cur.WriteByte(b)
			i++
		}
	}
	if cur.Len() > 0 {
		toks = append(toks, cur.String())
	}
	return toks
}
