//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package render

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"
)

func newFileTty(_ *os.File) (tcell.Tty, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}
