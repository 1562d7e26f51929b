// Package terminal provides a rendering context that drives the terminal with direct ANSI sequences.
//
// Features:
//   - True color (24-bit) and 256-color palette foreground output
//   - Optional alternate screen buffer
//   - Bounds-checked cursor positioning against the live window size
//   - Buffered output, pushed to the terminal only on Render
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
