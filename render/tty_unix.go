//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package render

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/ncdemo/terminal"
)

// fileTty is a tcell.Tty that renders to an arbitrary tty file.
// Input comes from stdin when rendering to stdout, otherwise from the device itself.
type fileTty struct {
	in    *os.File
	out   *os.File
	fd    int
	saved *term.State
	sig   chan os.Signal
	cb    func()
	stopQ chan struct{}
	wg    sync.WaitGroup
	l     sync.Mutex

	errMu sync.Mutex
	werr  error // first failed write
}

func newFileTty(out *os.File) (*fileTty, error) {
	in := os.Stdin
	if out == nil {
		out = os.Stdout
	}
	if out != os.Stdout {
		in = out
	}

	if !term.IsTerminal(int(out.Fd())) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, out.Name())
	}
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("%w: %s", ErrNotTerminal, in.Name())
	}

	return &fileTty{
		in:  in,
		out: out,
		fd:  int(in.Fd()),
		sig: make(chan os.Signal, 1),
	}, nil
}

func (tty *fileTty) Read(b []byte) (int, error) {
	return tty.in.Read(b)
}

// Write records the first failure, tcell drops write errors
func (tty *fileTty) Write(b []byte) (int, error) {
	n, err := tty.out.Write(b)
	if err != nil {
		tty.errMu.Lock()
		if tty.werr == nil {
			tty.werr = err
		}
		tty.errMu.Unlock()
	}
	return n, err
}

// WriteErr returns the first write error seen on the output
func (tty *fileTty) WriteErr() error {
	tty.errMu.Lock()
	defer tty.errMu.Unlock()
	return tty.werr
}

// Close is a no-op, the files belong to the caller
func (tty *fileTty) Close() error {
	return nil
}

func (tty *fileTty) Start() error {
	tty.l.Lock()
	defer tty.l.Unlock()

	_ = tty.in.SetReadDeadline(time.Time{})
	saved, err := term.MakeRaw(tty.fd)
	if err != nil {
		return err
	}
	tty.saved = saved

	tty.stopQ = make(chan struct{})
	tty.wg.Add(1)
	go func(stopQ chan struct{}) {
		defer tty.wg.Done()
		for {
			select {
			case <-tty.sig:
				tty.l.Lock()
				cb := tty.cb
				tty.l.Unlock()
				if cb != nil {
					cb()
				}
			case <-stopQ:
				return
			}
		}
	}(tty.stopQ)

	signal.Notify(tty.sig, syscall.SIGWINCH)
	return nil
}

func (tty *fileTty) Drain() error {
	_ = tty.in.SetReadDeadline(time.Now())
	return terminal.SetBufParams(tty.fd, 0, 0)
}

func (tty *fileTty) Stop() error {
	tty.l.Lock()
	err := term.Restore(tty.fd, tty.saved)
	_ = tty.in.SetReadDeadline(time.Now())

	signal.Stop(tty.sig)
	close(tty.stopQ)
	tty.l.Unlock()

	tty.wg.Wait()
	return err
}

func (tty *fileTty) WindowSize() (tcell.WindowSize, error) {
	ws, err := unix.IoctlGetWinsize(int(tty.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return tcell.WindowSize{}, err
	}
	size := tcell.WindowSize{
		Width:       int(ws.Col),
		Height:      int(ws.Row),
		PixelWidth:  int(ws.Xpixel),
		PixelHeight: int(ws.Ypixel),
	}
	if size.Width == 0 {
		size.Width = 80
	}
	if size.Height == 0 {
		size.Height = 24
	}
	return size, nil
}

func (tty *fileTty) NotifyResize(cb func()) {
	tty.l.Lock()
	tty.cb = cb
	tty.l.Unlock()
}
