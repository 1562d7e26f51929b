//go:build !unix

package terminal

import (
	"fmt"
	"os"
	"runtime"
)

type unsupportedBackend struct{}

func newBackend(_ *os.File) Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Init() error {
	return fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}

func (unsupportedBackend) Fini() error                 { return nil }
func (unsupportedBackend) Size() (int, int)            { return 80, 24 }
func (unsupportedBackend) Write(p []byte) (int, error) { return 0, ErrUnsupported }
