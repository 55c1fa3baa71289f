// Package term owns the terminal transports: the real POSIX one that
// toggles raw mode on an actual descriptor, and an in-memory one that
// records writes for deterministic tests and script replay.
package term

import (
	"errors"

	"termkit/ansi"
)

// Transport is the single I/O boundary the toolkit core talks through.
// Start wires the two callbacks: onInput receives raw byte chunks exactly
// as they arrived, onResize receives the new size in cells.
type Transport interface {
	Start(onInput func([]byte), onResize func(cols, rows int)) error
	Stop() error

	WriteString(s string) error
	Columns() int
	Rows() int

	// Cursor and clearing primitives, thin wrappers over WriteString.
	HideCursor() error
	ShowCursor() error
	ClearScreen() error
	ClearLine() error
	ClearToEnd() error
	MoveCursorUp(n int) error
	MoveCursorDown(n int) error
}

// Usage errors reported by Start/Stop.
var (
	ErrAlreadyStarted = errors.New("term: transport already started")
	ErrNotStarted     = errors.New("term: transport not started")
	ErrNotTerminal    = errors.New("term: input is not a terminal")
)

// ops provides the cursor/clear primitives shared by every transport.
type ops struct {
	write func(string) error
}

func (o ops) HideCursor() error          { return o.write(ansi.HideCursor) }
func (o ops) ShowCursor() error          { return o.write(ansi.ShowCursor) }
func (o ops) ClearScreen() error         { return o.write(ansi.ClearScreen + ansi.CursorHome) }
func (o ops) ClearLine() error           { return o.write(ansi.ClearLine) }
func (o ops) ClearToEnd() error          { return o.write(ansi.ClearToEnd) }
func (o ops) MoveCursorUp(n int) error   { return o.write(ansi.CursorUp(n)) }
func (o ops) MoveCursorDown(n int) error { return o.write(ansi.CursorDown(n)) }
