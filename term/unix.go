//go:build unix

package term

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"termkit/ansi"
)

// UnixTransport drives a real POSIX terminal: raw mode on the input
// descriptor, bracketed paste (and optionally the Kitty keyboard protocol)
// on the output, SIGWINCH for resizes, and a polling read pump feeding raw
// chunks to the decoder.
type UnixTransport struct {
	ops

	in  *os.File
	out *os.File

	// EnhancedKeys additionally pushes the Kitty keyboard protocol's
	// disambiguation flags on Start.
	EnhancedKeys bool

	mu       sync.Mutex
	running  bool
	oldState *term.State
	stopCh   chan struct{}
	doneCh   chan struct{}
	sigCh    chan os.Signal
}

// UnixOption configures a UnixTransport.
type UnixOption func(*UnixTransport)

// WithFiles overrides the input and output files, default stdin/stdout.
// Used to run the transport on a pty pair in tests.
func WithFiles(in, out *os.File) UnixOption {
	return func(t *UnixTransport) {
		t.in = in
		t.out = out
	}
}

// WithEnhancedKeys turns on the Kitty keyboard protocol for the session.
func WithEnhancedKeys() UnixOption {
	return func(t *UnixTransport) { t.EnhancedKeys = true }
}

// NewUnixTransport returns a transport over stdin/stdout.
func NewUnixTransport(opts ...UnixOption) *UnixTransport {
	t := &UnixTransport{in: os.Stdin, out: os.Stdout}
	t.ops = ops{write: t.WriteString}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start enters raw mode, enables bracketed paste, and begins delivering
// input and resize callbacks. Calling Start while running is a usage error.
func (t *UnixTransport) Start(onInput func([]byte), onResize func(cols, rows int)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrAlreadyStarted
	}

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.oldState = old

	modes := ansi.BracketedPasteOn
	if t.EnhancedKeys {
		modes += ansi.KittyKeyboardOn
	}
	if err := t.WriteString(modes); err != nil {
		// Start failed after raw mode; undo it before reporting.
		_ = term.Restore(fd, old)
		t.oldState = nil
		return err
	}

	t.running = true
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.readLoop(t.stopCh, t.doneCh, onInput)

	if onResize != nil {
		t.sigCh = make(chan os.Signal, 1)
		signal.Notify(t.sigCh, syscall.SIGWINCH)
		go t.resizeLoop(t.stopCh, t.sigCh, onResize)
	}
	return nil
}

// Stop restores the terminal. It reverses paste/keyboard modes and the raw
// state even when Start only partially succeeded, and is safe to call more
// than once.
func (t *UnixTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running && t.oldState == nil {
		return nil
	}

	modes := ansi.BracketedPasteOff
	if t.EnhancedKeys {
		modes = ansi.KittyKeyboardOff + modes
	}
	werr := t.WriteString(modes)

	if t.sigCh != nil {
		signal.Stop(t.sigCh)
		t.sigCh = nil
	}
	if t.running {
		t.running = false
		close(t.stopCh)
		select {
		case <-t.doneCh:
		case <-time.After(200 * time.Millisecond):
			// Reader stuck in a blocking read; proceed with restore anyway.
		}
	}

	var rerr error
	if t.oldState != nil {
		rerr = term.Restore(int(t.in.Fd()), t.oldState)
		t.oldState = nil
	}
	if rerr != nil {
		return rerr
	}
	return werr
}

func (t *UnixTransport) WriteString(s string) error {
	if s == "" {
		return nil
	}
	_, err := t.out.WriteString(s)
	return err
}

func (t *UnixTransport) Columns() int {
	c, _ := t.size()
	return c
}

func (t *UnixTransport) Rows() int {
	_, r := t.size()
	return r
}

func (t *UnixTransport) size() (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// readLoop polls the input descriptor so Stop can interrupt it, handing
// every chunk to onInput exactly as it arrived.
func (t *UnixTransport) readLoop(stopCh <-chan struct{}, doneCh chan<- struct{}, onInput func([]byte)) {
	defer close(doneCh)
	fd := int(t.in.Fd())
	buf := make([]byte, 4096)
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if n == 0 {
			continue // timeout, re-check stopCh
		}

		rn, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return
		}
		if rn == 0 {
			return // EOF
		}
		chunk := make([]byte, rn)
		copy(chunk, buf[:rn])
		if onInput != nil {
			onInput(chunk)
		}
	}
}

func (t *UnixTransport) resizeLoop(stopCh <-chan struct{}, sigCh <-chan os.Signal, onResize func(cols, rows int)) {
	for {
		select {
		case <-stopCh:
			return
		case <-sigCh:
			cols, rows := t.size()
			onResize(cols, rows)
		}
	}
}
