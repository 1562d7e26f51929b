package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	// ErrNotTerminal is returned by New when the output stream is not a tty
	ErrNotTerminal = errors.New("output is not a terminal")
	// ErrUnsupported is returned by New when the terminal type cannot be driven
	ErrUnsupported = errors.New("terminal type unsupported")
	// ErrOutOfBounds is returned by Move for coordinates outside the window
	ErrOutOfBounds = errors.New("cursor position out of bounds")
	// ErrStopped is returned by any call made after Stop
	ErrStopped = errors.New("terminal stopped")
)

// Options configures New
type Options struct {
	// InhibitAltScreen keeps output on the primary screen buffer
	InhibitAltScreen bool
	// Out receives rendered output, nil means os.Stdout
	Out *os.File
	// TermType overrides $TERM, empty means autodetect
	TermType string
	// ColorMode forces a color capability, ColorModeAuto detects it
	ColorMode ColorMode
}

// Terminal is an ANSI rendering context.
// Drawing calls buffer their sequences; Render pushes them to the terminal.
type Terminal struct {
	backend   Backend
	writer    *bufio.Writer
	colorMode ColorMode
	altScreen bool

	mu      sync.Mutex
	stopped bool
}

// New initializes the terminal described by opts
func New(opts Options) (*Terminal, error) {
	return newTerminal(newBackend(opts.Out), opts)
}

func newTerminal(b Backend, opts Options) (*Terminal, error) {
	termType := opts.TermType
	if termType == "" {
		termType = os.Getenv("TERM")
	}
	if !Supported(termType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, termType)
	}

	if err := b.Init(); err != nil {
		return nil, err
	}

	mode := opts.ColorMode
	if mode == ColorModeAuto {
		mode = DetectColorMode(termType)
	}

	t := &Terminal{
		backend:   b,
		writer:    bufio.NewWriterSize(b, 4096),
		colorMode: mode,
		altScreen: !opts.InhibitAltScreen,
	}

	if t.altScreen {
		t.writer.Write(csiAltScreenEnter)
	}
	t.writer.Write(csiSGR0)
	t.writer.Write(csiClear)
	if err := t.writer.Flush(); err != nil {
		b.Fini()
		return nil, fmt.Errorf("terminal setup: %w", err)
	}

	return t, nil
}

// Supported reports whether a terminal type can be driven with ANSI sequences
func Supported(termType string) bool {
	switch strings.ToLower(termType) {
	case "", "dumb", "unknown":
		return false
	}
	return true
}

// ColorMode returns the resolved color capability
func (t *Terminal) ColorMode() ColorMode {
	return t.colorMode
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int) {
	return t.backend.Size()
}

// SetFgRGB8 sets the foreground color for subsequent output
func (t *Terminal) SetFgRGB8(r, g, b uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ErrStopped
	}

	writeFg(t.writer, RGB{R: r, G: g, B: b}, t.colorMode)
	return nil
}

// Move positions the cursor (0-indexed row and column)
func (t *Terminal) Move(row, col int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ErrStopped
	}

	w, h := t.backend.Size()
	if row < 0 || col < 0 || row >= h || col >= w {
		return fmt.Errorf("%w: row %d col %d on %dx%d", ErrOutOfBounds, row, col, w, h)
	}

	writeCursorPos(t.writer, row, col)
	return nil
}

// Render writes buffered output to the terminal
func (t *Terminal) Render() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ErrStopped
	}

	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Stop restores terminal state. Only the first call does any work.
func (t *Terminal) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ErrStopped
	}
	t.stopped = true

	// Pending output is dropped, a failed flush leaves the writer unusable
	t.writer.Reset(t.backend)

	t.writer.Write(csiSGR0)
	t.writer.Write(csiCursorShow)
	if t.altScreen {
		t.writer.Write(csiAltScreenExit)
	}
	flushErr := t.writer.Flush()
	finiErr := t.backend.Fini()

	return errors.Join(flushErr, finiErr)
}

// EmergencyReset writes a best-effort restore sequence to w and returns the
// controlling tty to cooked mode. For panic paths where Stop cannot run.
func EmergencyReset(w io.Writer) {
	_, _ = w.Write(emergencySeq)
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
	resetTerminalMode()
}
