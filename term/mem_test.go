package term

import (
	"strings"
	"testing"

	"termkit/ansi"
)

func TestMemTransportDoubleStart(t *testing.T) {
	tr := NewMemTransport(80, 24)
	if err := tr.Start(nil, nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tr.Start(nil, nil); err != ErrAlreadyStarted {
		t.Fatalf("second start = %v, want ErrAlreadyStarted", err)
	}
	if err := tr.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := tr.Start(nil, nil); err != nil {
		t.Fatalf("restart after stop: %v", err)
	}
}

func TestMemTransportWriteLog(t *testing.T) {
	tr := NewMemTransport(80, 24)
	_ = tr.WriteString("one")
	_ = tr.WriteString("")
	_ = tr.WriteString("two")
	got := tr.Writes()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("write log = %q", got)
	}
	if tr.Output() != "onetwo" {
		t.Fatalf("output = %q", tr.Output())
	}
	tr.ResetWrites()
	if len(tr.Writes()) != 0 {
		t.Fatalf("reset did not clear the log")
	}
}

func TestMemTransportInputAndResize(t *testing.T) {
	tr := NewMemTransport(80, 24)
	var inputs []string
	var cols, rows int
	err := tr.Start(
		func(b []byte) { inputs = append(inputs, string(b)) },
		func(c, r int) { cols, rows = c, r },
	)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	tr.FeedInput("abc")
	tr.FeedInput("\x1b[A")
	if len(inputs) != 2 || inputs[0] != "abc" || inputs[1] != "\x1b[A" {
		t.Fatalf("inputs = %q", inputs)
	}
	tr.Resize(40, 12)
	if cols != 40 || rows != 12 {
		t.Fatalf("resize callback got %dx%d", cols, rows)
	}
	if tr.Columns() != 40 || tr.Rows() != 12 {
		t.Fatalf("size accessors = %dx%d", tr.Columns(), tr.Rows())
	}
}

func TestMemTransportStoppedDropsCallbacks(t *testing.T) {
	tr := NewMemTransport(80, 24)
	called := false
	_ = tr.Start(func([]byte) { called = true }, nil)
	_ = tr.Stop()
	tr.FeedInput("x")
	if called {
		t.Fatalf("input delivered after Stop")
	}
}

func TestTransportPrimitives(t *testing.T) {
	tr := NewMemTransport(80, 24)
	_ = tr.HideCursor()
	_ = tr.ShowCursor()
	_ = tr.ClearLine()
	_ = tr.ClearToEnd()
	_ = tr.MoveCursorUp(2)
	_ = tr.MoveCursorDown(3)
	out := tr.Output()
	for _, seq := range []string{
		ansi.HideCursor, ansi.ShowCursor, ansi.ClearLine,
		ansi.ClearToEnd, "\x1b[2A", "\x1b[3B",
	} {
		if !strings.Contains(out, seq) {
			t.Fatalf("output %q missing %q", out, seq)
		}
	}
	// Zero-length moves write nothing.
	tr.ResetWrites()
	_ = tr.MoveCursorUp(0)
	if tr.Output() != "" {
		t.Fatalf("MoveCursorUp(0) wrote %q", tr.Output())
	}
}
