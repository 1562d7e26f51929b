package render

// Context is an active rendering context on a terminal.
// A Context is obtained from Open and released exactly once with Stop.
type Context interface {
	// SetFgRGB8 sets the foreground color used for subsequent drawing
	SetFgRGB8(r, g, b uint8) error
	// Render pushes pending drawing state to the terminal
	Render() error
	// Move positions the cursor (0-indexed row and column); does not flush
	Move(row, col int) error
	// Stop releases the context and restores the terminal
	Stop() error
}
