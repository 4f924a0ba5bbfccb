package clipboard

import (
	"io"
	"os"
	"sync"
)

// Terminal is the program's output file with every write serialized. The
// UI renderer and the OSC52 sink share one Terminal so their escape
// sequences reach the terminal whole. It keeps Fd, so bubbletea still
// sees a TTY.
type Terminal struct {
	mu   sync.Mutex
	file *os.File
}

// NewTerminal wraps f
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{file: f}
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Write(p)
}

func (t *Terminal) WriteString(s string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.WriteString(s)
}

func (t *Terminal) Read(p []byte) (int, error) {
	return t.file.Read(p)
}

func (t *Terminal) Close() error {
	return t.file.Close()
}

// Fd returns the file descriptor of the wrapped file
func (t *Terminal) Fd() uintptr {
	return t.file.Fd()
}

var _ io.ReadWriteCloser = (*Terminal)(nil)
