package terminal

// Backend abstracts platform-specific terminal operations.
// The unix implementation writes to a tty file; tests substitute an in-memory one.
type Backend interface {
	// Lifecycle
	Init() error
	Fini() error

	// Capabilities
	Size() (width, height int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)
}
