//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
	// Waits for pending output before applying
	ioctlSetTermiosDrain = unix.TCSETSW
)
