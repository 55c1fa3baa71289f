package script

import (
	"fmt"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/vt"

	"termkit/ansi"
	"termkit/input"
	"termkit/render"
	"termkit/term"
)

// Runner executes a step list against an in-memory transport and records
// everything needed to assert on the run afterwards: the decoded events,
// the raw write log, and the final viewport.
type Runner struct {
	root   render.Component
	tr     *term.MemTransport
	dec    *input.Decoder
	ren    *render.Renderer
	events []input.Event
}

// NewRunner wires a component tree to a memory transport of the given size.
func NewRunner(root render.Component, cols, rows int) (*Runner, error) {
	r := &Runner{
		root: root,
		tr:   term.NewMemTransport(cols, rows),
		dec:  input.NewDecoder(),
	}
	r.ren = render.New(r.tr)
	r.ren.Strict = true
	if err := r.tr.Start(r.onInput, r.onResize); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runner) onInput(data []byte) {
	for _, ev := range r.dec.Feed(string(data)) {
		r.events = append(r.events, ev)
		r.dispatch(ev)
	}
}

func (r *Runner) onResize(cols, rows int) {
	ev := input.Event{Type: input.EventResize}
	r.events = append(r.events, ev)
	r.dispatch(ev)
}

func (r *Runner) dispatch(ev input.Event) {
	if h, ok := r.root.(render.InputHandler); ok {
		h.HandleEvent(ev)
	}
}

// Run applies each step in order, rendering a frame after every one.
func (r *Runner) Run(steps []Step) error {
	for i, s := range steps {
		if err := r.apply(s); err != nil {
			return fmt.Errorf("script: step %d (%s): %w", i+1, Describe(s), err)
		}
		if err := r.Render(); err != nil {
			return fmt.Errorf("script: step %d (%s): %w", i+1, Describe(s), err)
		}
	}
	return nil
}

func (r *Runner) apply(s Step) error {
	switch {
	case s.Resize != nil:
		r.tr.Resize(s.Resize.Cols, s.Resize.Rows)
		return nil
	case s.Sleep > 0:
		time.Sleep(time.Duration(s.Sleep) * time.Millisecond)
		return nil
	}
	seq, err := EncodeStep(s)
	if err != nil {
		return err
	}
	if seq != "" {
		r.tr.FeedInput(seq)
	}
	return nil
}

// Render produces one frame from the component tree at the transport's
// current size. Component output is wrapped to the viewport width before
// it reaches the renderer.
func (r *Runner) Render() error {
	width, height := r.tr.Columns(), r.tr.Rows()
	var lines []string
	for _, l := range r.root.Render(width) {
		lines = append(lines, ansi.Wrap(l, width)...)
	}
	return r.ren.Render(lines, width, height)
}

// Events returns every decoded input event in arrival order.
func (r *Runner) Events() []input.Event {
	out := make([]input.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Writes returns the raw write log, one entry per transport write.
func (r *Runner) Writes() []string {
	return r.tr.Writes()
}

// Viewport replays the full write log through a terminal emulator sized to
// the transport's final dimensions and returns the visible screen, one
// plain-text string per row, with trailing blank rows removed.
func (r *Runner) Viewport() []string {
	emu := vt.NewEmulator(r.tr.Columns(), r.tr.Rows())
	_, _ = emu.Write([]byte(r.tr.Output()))
	rows := strings.Split(emu.Render(), "\r\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(xansi.Strip(row), " ")
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Close stops the underlying transport.
func (r *Runner) Close() error {
	return r.tr.Stop()
}
