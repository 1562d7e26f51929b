package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/ncdemo/terminal"
)

// Errors shared by every backend
var (
	ErrUnsupported = terminal.ErrUnsupported
	ErrNotTerminal = terminal.ErrNotTerminal
	ErrOutOfBounds = terminal.ErrOutOfBounds
	ErrStopped     = terminal.ErrStopped
)

// Backend selects the library that drives the terminal
type Backend string

const (
	BackendTcell Backend = "tcell" // terminfo-driven, via gdamore/tcell
	BackendANSI  Backend = "ansi"  // direct ANSI sequences, via package terminal
)

// ParseBackend accepts a backend name, empty selects tcell
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendTcell, nil
	case BackendTcell, BackendANSI:
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// Options is passed once to Open
type Options struct {
	// InhibitAltScreen keeps output on the primary screen buffer
	InhibitAltScreen bool
	// Out receives rendered output, nil means os.Stdout
	Out *os.File
	// TermType overrides $TERM, empty means autodetect
	TermType string
	// ColorMode forces a color capability (ANSI backend)
	ColorMode terminal.ColorMode
}

// Open initializes a rendering context on the selected backend.
// On error no context exists and nothing needs to be stopped.
func Open(backend Backend, opts Options) (Context, error) {
	switch backend {
	case BackendTcell, "":
		s, err := openScreen(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendANSI:
		t, err := terminal.New(terminal.Options{
			InhibitAltScreen: opts.InhibitAltScreen,
			Out:              opts.Out,
			TermType:         opts.TermType,
			ColorMode:        opts.ColorMode,
		})
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: backend %q", ErrUnsupported, backend)
}
