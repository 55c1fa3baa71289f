//go:build unix

package demo

import (
	"termkit/ansi"
	"termkit/input"
	"termkit/render"
	"termkit/term"
)

// Run drives the inspector on the real terminal until ctrl+c.
func Run() error {
	tr := term.NewUnixTransport(term.WithEnhancedKeys())
	dec := input.NewDecoder()
	app := NewApp()
	ren := render.New(tr)

	events := make(chan input.Event, 64)
	resized := make(chan struct{}, 1)
	err := tr.Start(
		func(data []byte) {
			for _, ev := range dec.Feed(string(data)) {
				events <- ev
			}
		},
		func(cols, rows int) {
			select {
			case resized <- struct{}{}:
			default:
			}
		},
	)
	if err != nil {
		return err
	}
	defer tr.Stop()

	_ = tr.HideCursor()
	defer tr.ShowCursor()

	draw := func() error {
		width, height := tr.Columns(), tr.Rows()
		var lines []string
		for _, l := range app.Render(width) {
			lines = append(lines, ansi.Wrap(l, width)...)
		}
		return ren.Render(lines, width, height)
	}
	if err := draw(); err != nil {
		return err
	}
	for {
		select {
		case ev := <-events:
			if ev.Type == input.EventKey && ev.Key == input.KeyRune &&
				ev.Rune == 'c' && ev.Mods&input.ModCtrl != 0 {
				return nil
			}
			app.HandleEvent(ev)
			if err := draw(); err != nil {
				return err
			}
		case <-resized:
			if err := draw(); err != nil {
				return err
			}
		}
	}
}
