package kli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// Terminal is the output stream a Renderer draws to.
type Terminal interface {
	io.Writer
	// Size returns the current dimensions in cells.
	Size() (width, height int)
	// Resize delivers new dimensions. It may return nil if the size never
	// changes.
	Resize() <-chan Size
}

// TTYOptions configures OpenTTY.
type TTYOptions struct {
	// Inline keeps the primary screen instead of switching to the
	// alternate one.
	Inline bool
	// Mouse enables SGR mouse reporting.
	Mouse bool
}

// TTY is a Terminal backed by the process's controlling terminal.
type TTY struct {
	out   *os.File
	fd    int
	inFd  int
	state *term.State
	opts  TTYOptions

	mu     sync.Mutex
	width  int
	height int

	resize chan Size
	sig    chan os.Signal
	closed bool
}

// OpenTTY puts stdin into raw mode and prepares stdout for full-screen
// drawing. Close restores the terminal.
func OpenTTY(opts TTYOptions) (*TTY, error) {
	fd := int(os.Stdout.Fd())
	inFd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(inFd) {
		return nil, ErrNoTerminal
	}

	width, height, err := getTerminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	state, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("kli: enter raw mode: %w", err)
	}

	t := &TTY{
		out:    os.Stdout,
		fd:     fd,
		inFd:   inFd,
		state:  state,
		opts:   opts,
		width:  width,
		height: height,
		resize: make(chan Size, 1),
		sig:    make(chan os.Signal, 1),
	}

	setup := seqHideCursor
	if !opts.Inline {
		setup = seqAltScreenEnter + setup + seqClearScreen
	}
	if opts.Mouse {
		setup += seqMouseOn
	}
	if _, err := io.WriteString(t.out, setup); err != nil {
		_ = term.Restore(inFd, state)
		return nil, fmt.Errorf("kli: prepare terminal: %w", err)
	}

	signal.Notify(t.sig, unix.SIGWINCH)
	go t.handleSignals()
	return t, nil
}

// getTerminalSize returns the current terminal dimensions.
func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (t *TTY) handleSignals() {
	for range t.sig {
		width, height, err := getTerminalSize(t.fd)
		if err != nil {
			continue
		}
		t.mu.Lock()
		changed := width != t.width || height != t.height
		t.width, t.height = width, height
		t.mu.Unlock()
		if !changed {
			continue
		}
		select {
		case t.resize <- Size{Width: width, Height: height}:
		default:
			// drop the stale pending size in favour of the new one
			select {
			case <-t.resize:
			default:
			}
			t.resize <- Size{Width: width, Height: height}
		}
	}
}

// Write writes p to stdout.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the last known terminal size.
func (t *TTY) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Resize returns the channel that receives terminal size changes.
func (t *TTY) Resize() <-chan Size {
	return t.resize
}

// Close restores the cursor, screen and input mode. Calls after the first
// do nothing.
func (t *TTY) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	signal.Stop(t.sig)
	close(t.sig)

	teardown := seqReset + seqShowCursor
	if t.opts.Mouse {
		teardown = seqMouseOff + teardown
	}
	if !t.opts.Inline {
		teardown += seqAltScreenExit
	}
	_, werr := io.WriteString(t.out, teardown)
	if t.state != nil {
		if err := term.Restore(t.inFd, t.state); err != nil {
			return fmt.Errorf("kli: restore terminal: %w", err)
		}
	}
	if werr != nil {
		return fmt.Errorf("kli: restore terminal: %w", werr)
	}
	return nil
}

// StaticTerminal is a Terminal over any writer with a size set by the
// caller. It is used for snapshots and tests.
type StaticTerminal struct {
	w io.Writer

	mu     sync.Mutex
	width  int
	height int
	resize chan Size
}

// NewStaticTerminal returns a terminal of the given size writing to w.
func NewStaticTerminal(w io.Writer, width, height int) *StaticTerminal {
	return &StaticTerminal{w: w, width: width, height: height, resize: make(chan Size, 1)}
}

// Write writes p to the underlying writer.
func (s *StaticTerminal) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Size returns the configured size.
func (s *StaticTerminal) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize returns the channel SetSize notifies.
func (s *StaticTerminal) Resize() <-chan Size {
	return s.resize
}

// SetSize changes the size and notifies any running renderer.
func (s *StaticTerminal) SetSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	select {
	case s.resize <- Size{Width: width, Height: height}:
	default:
	}
}
