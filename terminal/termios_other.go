//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

// SetBufParams is a no-op where termios is unavailable
func SetBufParams(fd int, vMin, vTime uint8) error { return nil }

// resetTerminalMode is a no-op where termios is unavailable
func resetTerminalMode() {}
