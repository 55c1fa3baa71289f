// Package ansi holds the escape sequences the toolkit emits and the
// ANSI-aware text utilities (visible width, word wrap, SGR state tracking)
// the renderer builds on.
package ansi

import "strconv"

const (
	// ESC introduces every escape sequence.
	ESC = "\x1b"
	// CSI is the Control Sequence Introducer.
	CSI = "\x1b["

	// Synchronized output framing (DEC private mode 2026). Terminals that
	// support it buffer everything between the pair and swap it in at once.
	SyncStart = "\x1b[?2026h"
	SyncEnd   = "\x1b[?2026l"

	// Clearing.
	ClearScrollback = "\x1b[3J"
	ClearScreen     = "\x1b[2J"
	ClearToEnd      = "\x1b[J"
	ClearLine       = "\x1b[K"
	CursorHome      = "\x1b[H"

	// Cursor visibility.
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"

	// Bracketed paste mode and its wire markers.
	BracketedPasteOn  = "\x1b[?2004h"
	BracketedPasteOff = "\x1b[?2004l"
	PasteStart        = "\x1b[200~"
	PasteEnd          = "\x1b[201~"

	// Kitty keyboard protocol: push disambiguate-escape-codes, then pop.
	KittyKeyboardOn  = "\x1b[>1u"
	KittyKeyboardOff = "\x1b[<u"

	// SGR reset.
	Reset = "\x1b[0m"
)

// TabWidth is the fixed column width a tab occupies everywhere in the
// toolkit: measurement, wrapping and rendering all agree on it.
const TabWidth = 3

// CursorUp returns the relative cursor-up sequence, or "" for n <= 0.
func CursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return CSI + strconv.Itoa(n) + "A"
}

// CursorDown returns the relative cursor-down sequence, or "" for n <= 0.
func CursorDown(n int) string {
	if n <= 0 {
		return ""
	}
	return CSI + strconv.Itoa(n) + "B"
}
