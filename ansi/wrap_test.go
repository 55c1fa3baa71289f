package ansi

import (
	"strings"
	"testing"
)

func TestWrapShortLineUntouched(t *testing.T) {
	tests := map[string]struct {
		in    string
		width int
	}{
		"plain":           {"hello world", 20},
		"exact fit":       {"12345", 5},
		"double spaces":   {"a  b", 10},
		"styled":          {"\x1b[31mred\x1b[0m", 10},
		"trailing spaces": {"ab  ", 10},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Wrap(tt.in, tt.width)
			if len(got) != 1 || got[0] != tt.in {
				t.Fatalf("Wrap(%q, %d) = %q, want [%q]", tt.in, tt.width, got, tt.in)
			}
		})
	}
}

func TestWrapEmptyLineKeepsSlot(t *testing.T) {
	got := Wrap("", 10)
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("Wrap(\"\") = %q, want one empty line", got)
	}
	got = Wrap("a\n\nb", 10)
	if len(got) != 3 || got[1] != "" {
		t.Fatalf("blank interior line lost: %q", got)
	}
}

func TestWrapWidthInvariant(t *testing.T) {
	inputs := []string{
		"the quick brown fox jumps over the lazy dog",
		"a b c d e f g h i j k l m n o p",
		strings.Repeat("x", 100),
		"日本語のテキストを折り返すテスト です",
		"\x1b[1mbold words keep wrapping\x1b[0m over and over again",
		"word " + strings.Repeat("y", 40) + " tail",
	}
	for _, in := range inputs {
		for _, width := range []int{1, 2, 3, 5, 8, 13, 21} {
			for _, line := range Wrap(in, width) {
				if w := StringWidth(line); w > width {
					t.Fatalf("Wrap(%q, %d): line %q is %d columns wide", in, width, line, w)
				}
			}
		}
	}
}

func TestWrapGreedyPacking(t *testing.T) {
	got := Wrap("aa bb cc dd", 5)
	want := []string{"aa bb", "cc dd"}
	if len(got) != len(want) {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Wrap = %q, want %q", got, want)
		}
	}
}

func TestWrapHardSplitsOverwideToken(t *testing.T) {
	got := Wrap("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
}

func TestWrapHardSplitRespectsWideGlyphs(t *testing.T) {
	// Each CJK glyph is two columns; none may straddle the boundary.
	got := Wrap("日本語テスト", 3)
	for _, line := range got {
		if w := StringWidth(line); w > 3 {
			t.Fatalf("wide glyph straddles boundary: %q is %d columns", line, w)
		}
	}
	if joined := strings.Join(got, ""); Strip(joined) != "日本語テスト" {
		t.Fatalf("hard split lost glyphs: %q", got)
	}
}

func TestWrapStyleContinuity(t *testing.T) {
	text := "\x1b[31m" + strings.TrimSpace(strings.Repeat("word ", 20)) + "\x1b[0m"
	lines := Wrap(text, 12)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %q", lines)
	}
	for i, line := range lines {
		if !strings.Contains(line, "\x1b[31m") {
			t.Fatalf("line %d lost the red foreground: %q", i, line)
		}
	}
	// Wrapped lines close with the minimal foreground-off code, not a reset.
	for _, line := range lines[:len(lines)-1] {
		if !strings.HasSuffix(line, "\x1b[39m") {
			t.Fatalf("wrap break left color open: %q", line)
		}
	}
	if !strings.HasSuffix(lines[len(lines)-1], "\x1b[0m") {
		t.Fatalf("final line should keep the input's own reset: %q", lines[len(lines)-1])
	}
}

func TestWrapEscapeAttachesToWord(t *testing.T) {
	// The escape between words must not become a word of its own.
	lines := Wrap("one two \x1b[1mthree four five six seven", 9)
	for _, line := range lines {
		if w := StringWidth(line); w > 9 {
			t.Fatalf("line too wide: %q (%d)", line, w)
		}
	}
	joined := Strip(strings.Join(lines, " "))
	if !strings.Contains(joined, "three") {
		t.Fatalf("lost the word after the escape: %q", lines)
	}
}
