package ansi

import "testing"

func TestStyleStateApply(t *testing.T) {
	var st StyleState
	st.Apply("1;4;31")
	if !st.Bold || !st.Underline || st.Foreground != "31" {
		t.Fatalf("after 1;4;31: %+v", st)
	}
	st.Apply("22")
	if st.Bold || st.Faint {
		t.Fatalf("22 should clear bold and faint: %+v", st)
	}
	st.Apply("48;5;236")
	if st.Background != "48;5;236" {
		t.Fatalf("extended bg not tracked: %+v", st)
	}
	st.Apply("39")
	if st.Foreground != "" {
		t.Fatalf("39 should clear foreground: %+v", st)
	}
	st.Apply("0")
	if !st.IsZero() {
		t.Fatalf("0 should reset everything: %+v", st)
	}
}

func TestStyleStateEmptyParamsReset(t *testing.T) {
	var st StyleState
	st.Apply("7;38;2;10;20;30")
	if st.Foreground != "38;2;10;20;30" || !st.Inverse {
		t.Fatalf("truecolor fg not tracked: %+v", st)
	}
	st.Apply("")
	if !st.IsZero() {
		t.Fatalf("empty params should reset atomically: %+v", st)
	}
}

func TestStyleStateObserve(t *testing.T) {
	var st StyleState
	st.Observe("a\x1b[1mb\x1b[31mc")
	if !st.Bold || st.Foreground != "31" {
		t.Fatalf("observe missed sequences: %+v", st)
	}
	// Non-SGR sequences are ignored.
	st.Observe("\x1b[2K\x1b[10A")
	if !st.Bold || st.Foreground != "31" {
		t.Fatalf("non-SGR sequence mutated state: %+v", st)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	var st StyleState
	st.Apply("1;3;31;48;5;17")
	reopen := st.Sequence()
	var again StyleState
	again.Observe(reopen)
	if again != st {
		t.Fatalf("reopen sequence %q rebuilt %+v, want %+v", reopen, again, st)
	}
}

func TestCloseSequenceIsMinimal(t *testing.T) {
	var st StyleState
	st.Apply("1;31")
	closeSeq := st.CloseSequence()
	if closeSeq != "\x1b[22;39m" {
		t.Fatalf("close = %q, want \\x1b[22;39m", closeSeq)
	}
	var zero StyleState
	if zero.CloseSequence() != "" || zero.Sequence() != "" {
		t.Fatalf("zero state should produce no sequences")
	}
}

func TestApplyBackground(t *testing.T) {
	got := ApplyBackground("a\x1b[0mb", "48;5;236")
	want := "\x1b[48;5;236ma\x1b[0m\x1b[48;5;236mb"
	if got != want {
		t.Fatalf("ApplyBackground = %q, want %q", got, want)
	}
	// An explicit background reset also re-triggers the fill.
	got = ApplyBackground("x\x1b[49my", "41")
	want = "\x1b[41mx\x1b[49m\x1b[41my"
	if got != want {
		t.Fatalf("ApplyBackground = %q, want %q", got, want)
	}
	// Foreground-only sequences leave the fill alone.
	got = ApplyBackground("x\x1b[31my", "41")
	want = "\x1b[41mx\x1b[31my"
	if got != want {
		t.Fatalf("ApplyBackground = %q, want %q", got, want)
	}
}
