package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"
)

// altScreenEnv is read by tcell on Init and Fini
const altScreenEnv = "TCELL_ALTSCREEN"

// writeErrer reports the first failed write on a tty
type writeErrer interface {
	WriteErr() error
}

// screenContext implements Context over a tcell.Screen
type screenContext struct {
	mu         sync.Mutex
	screen     tcell.Screen
	out        writeErrer // nil when the screen owns its output
	style      tcell.Style
	restoreEnv func()
	stopped    bool
}

func newScreenContext(s tcell.Screen) *screenContext {
	return &screenContext{
		screen:     s,
		style:      tcell.StyleDefault,
		restoreEnv: func() {},
	}
}

// openScreen resolves terminfo, wraps the output in a tty and initializes tcell
func openScreen(opts Options) (*screenContext, error) {
	ti, err := lookupTerminfo(opts.TermType)
	if err != nil {
		return nil, err
	}

	tty, err := newFileTty(opts.Out)
	if err != nil {
		return nil, err
	}

	restore := setAltScreenEnv(opts.InhibitAltScreen)

	s, err := tcell.NewTerminfoScreenFromTtyTerminfo(tty, ti)
	if err != nil {
		restore()
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if err := s.Init(); err != nil {
		restore()
		return nil, fmt.Errorf("screen init: %w", err)
	}

	c := newScreenContext(s)
	c.restoreEnv = restore
	if we, ok := any(tty).(writeErrer); ok {
		c.out = we
	}
	return c, nil
}

// lookupTerminfo resolves the override or $TERM to a terminfo entry
func lookupTerminfo(termType string) (*terminfo.Terminfo, error) {
	if termType == "" {
		termType = os.Getenv("TERM")
	}
	if termType == "" || termType == "dumb" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, termType)
	}
	ti, err := tcell.LookupTerminfo(termType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupported, termType, err)
	}
	return ti, nil
}

// setAltScreenEnv pins tcell's alternate screen switch and returns its restore
func setAltScreenEnv(inhibit bool) func() {
	prev, had := os.LookupEnv(altScreenEnv)
	if inhibit {
		os.Setenv(altScreenEnv, "disable")
	} else {
		os.Unsetenv(altScreenEnv)
	}
	return func() {
		if had {
			os.Setenv(altScreenEnv, prev)
		} else {
			os.Unsetenv(altScreenEnv)
		}
	}
}

func (c *screenContext) SetFgRGB8(r, g, b uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	c.style = c.style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	c.screen.SetStyle(c.style)
	return nil
}

// Render flushes to the terminal. A failed write on the output, during this
// or any earlier flush, is reported here.
func (c *screenContext) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	c.screen.Show()
	if err := c.writeErr(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (c *screenContext) writeErr() error {
	if c.out == nil {
		return nil
	}
	return c.out.WriteErr()
}

func (c *screenContext) Move(row, col int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	w, h := c.screen.Size()
	if row < 0 || col < 0 || row >= h || col >= w {
		return fmt.Errorf("%w: row %d col %d on %dx%d", ErrOutOfBounds, row, col, w, h)
	}

	c.screen.ShowCursor(col, row)
	return nil
}

func (c *screenContext) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}
	c.stopped = true

	// Only failures first seen while restoring belong to Stop
	before := c.writeErr()
	c.screen.Fini()
	c.restoreEnv()

	if err := c.writeErr(); before == nil && err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}
