package term

import (
	"strings"
	"sync"
)

// MemTransport is the recording/replay stand-in for a real terminal. It
// logs every write, reports a settable size, and lets tests inject input
// chunks and resizes through the same callbacks the real transport uses.
type MemTransport struct {
	ops

	mu       sync.Mutex
	cols     int
	rows     int
	writes   []string
	onInput  func([]byte)
	onResize func(cols, rows int)
	running  bool
}

// NewMemTransport returns an in-memory transport with the given size.
func NewMemTransport(cols, rows int) *MemTransport {
	t := &MemTransport{cols: cols, rows: rows}
	t.ops = ops{write: t.WriteString}
	return t
}

func (t *MemTransport) Start(onInput func([]byte), onResize func(cols, rows int)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyStarted
	}
	t.running = true
	t.onInput = onInput
	t.onResize = onResize
	return nil
}

func (t *MemTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.onInput = nil
	t.onResize = nil
	return nil
}

func (t *MemTransport) WriteString(s string) error {
	if s == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, s)
	return nil
}

func (t *MemTransport) Columns() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

func (t *MemTransport) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// FeedInput delivers a raw input chunk as if the terminal had sent it.
func (t *MemTransport) FeedInput(s string) {
	t.mu.Lock()
	cb := t.onInput
	t.mu.Unlock()
	if cb != nil {
		cb([]byte(s))
	}
}

// Resize changes the reported size and fires the resize callback.
func (t *MemTransport) Resize(cols, rows int) {
	t.mu.Lock()
	t.cols = cols
	t.rows = rows
	cb := t.onResize
	t.mu.Unlock()
	if cb != nil {
		cb(cols, rows)
	}
}

// Writes returns a copy of the write log in order.
func (t *MemTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

// Output returns the concatenated write log, the exact byte stream a real
// terminal would have received.
func (t *MemTransport) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.writes, "")
}

// ResetWrites clears the write log, keeping callbacks and size.
func (t *MemTransport) ResetWrites() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = t.writes[:0]
}
