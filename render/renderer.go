package render

import (
	"fmt"
	"strings"

	"termkit/ansi"
)

// Writer is the single I/O boundary the renderer needs: a fire-and-forget
// write of a fully composed frame. Both transports satisfy it.
type Writer interface {
	WriteString(s string) error
}

// Renderer diffs each new frame against the previous one and writes only
// what changed, framed in synchronized-output markers so terminals swap the
// update in atomically. One instance per terminal session; callers must
// serialize Render calls.
type Renderer struct {
	out Writer

	// Strict makes a line wider than the viewport panic instead of being
	// written. A too-wide line is an upstream component bug that would
	// corrupt the next diff, so tests and debug builds turn this on.
	Strict bool

	prev      []string
	prevWidth int
	cursorRow int
	primed    bool
}

// New returns a renderer writing frames to out.
func New(out Writer) *Renderer {
	return &Renderer{out: out}
}

// Render makes the terminal show newLines. It either writes one complete
// frame and commits the new state, or (when nothing changed) writes nothing
// and leaves the state untouched.
func (r *Renderer) Render(newLines []string, viewportWidth, viewportHeight int) error {
	if r.Strict {
		for i, line := range newLines {
			if w := ansi.StringWidth(line); w > viewportWidth {
				panic(fmt.Sprintf("render: line %d is %d columns wide, viewport is %d", i, w, viewportWidth))
			}
		}
	}

	switch {
	case !r.primed:
		// First paint: the screen is assumed blank, emit everything.
		return r.writeFrame(strings.Join(newLines, "\r\n"), newLines, viewportWidth)

	case viewportWidth != r.prevWidth:
		// A diff computed against the old width would misalign; start over.
		return r.redrawAll(newLines, viewportWidth)
	}

	first := firstChange(r.prev, newLines)
	if first < 0 {
		return nil // no visible change, write nothing
	}

	// A change that scrolled above the viewport cannot be reached with
	// relative cursor moves; fall back to a full clear and redraw.
	viewportTop := r.cursorRow - viewportHeight + 1
	if first < viewportTop {
		return r.redrawAll(newLines, viewportWidth)
	}

	// The rewrite starts at the first change, clamped into the new frame:
	// when the frame shrank past the change point, the last surviving line
	// is rewritten too so the cursor always lands on the final row.
	start := first
	if start > len(newLines)-1 {
		start = len(newLines) - 1
	}
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	b.WriteString("\r")
	if delta := r.cursorRow - start; delta > 0 {
		b.WriteString(ansi.CursorUp(delta))
	} else if delta < 0 {
		b.WriteString(ansi.CursorDown(-delta))
	}
	b.WriteString(ansi.ClearToEnd)
	// Everything from the start row through the end is rewritten: the
	// clear removed the old tail, so unchanged trailing lines must come back.
	b.WriteString(strings.Join(newLines[start:], "\r\n"))
	return r.writeFrame(b.String(), newLines, viewportWidth)
}

// redrawAll clears scrollback and screen, homes the cursor and repaints.
func (r *Renderer) redrawAll(newLines []string, width int) error {
	frame := ansi.ClearScrollback + ansi.ClearScreen + ansi.CursorHome +
		strings.Join(newLines, "\r\n")
	return r.writeFrame(frame, newLines, width)
}

// writeFrame emits one synchronized write and commits the new state.
func (r *Renderer) writeFrame(body string, newLines []string, width int) error {
	if err := r.out.WriteString(ansi.SyncStart + body + ansi.SyncEnd); err != nil {
		return err
	}
	r.prev = append(r.prev[:0], newLines...)
	r.prevWidth = width
	// An empty frame leaves the physical cursor on row 0, not row -1.
	r.cursorRow = len(newLines) - 1
	if r.cursorRow < 0 {
		r.cursorRow = 0
	}
	r.primed = true
	return nil
}

// firstChange returns the index of the first differing line, comparing a
// missing line as empty when lengths differ, or -1 when the lists match.
func firstChange(old, new []string) int {
	n := len(old)
	if len(new) > n {
		n = len(new)
	}
	for i := 0; i < n; i++ {
		if lineAt(old, i) != lineAt(new, i) {
			return i
		}
	}
	return -1
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
