package clipboard

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard modes accepted by New
const (
	ModeSystem = "system"
	ModeOSC52  = "osc52"
)

// Sink sets clipboard text
type Sink interface {
	SetText(text string) error
}

// Reader is implemented by sinks that can read the clipboard back
type Reader interface {
	Text() (string, error)
}

// New returns the sink for mode. OSC52 sequences are written to out, which
// should be the writer the UI renders to (see Terminal).
func New(mode string, out io.Writer) (Sink, error) {
	switch mode {
	case "", ModeSystem:
		return System{}, nil
	case ModeOSC52:
		if out == nil {
			out = os.Stdout
		}
		return NewOSC52(out), nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode %q", mode)
	}
}

// System uses the OS clipboard (pbcopy, xclip/xsel, wl-copy, win32)
type System struct{}

func (System) SetText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

func (System) Text() (string, error) {
	return clipboard.ReadAll()
}

// OSC52 writes the terminal escape sequence that asks the terminal
// emulator to set its clipboard. Works over SSH but cannot be read back.
// Each sequence goes out in a single Write.
type OSC52 struct {
	mu  sync.Mutex
	out io.Writer
}

// NewOSC52 creates an OSC52 sink writing to out
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out}
}

func (o *OSC52) SetText(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(o.out)
	return err
}

// Expire clears the clipboard if it still holds secret. Sinks that cannot
// be read back are cleared unconditionally.
func Expire(s Sink, secret string) (bool, error) {
	if r, ok := s.(Reader); ok {
		current, err := r.Text()
		if err != nil {
			return false, err
		}
		if current != secret {
			return false, nil
		}
	}
	if err := s.SetText(""); err != nil {
		return false, err
	}
	return true, nil
}

// Recorder keeps clipboard writes in memory
type Recorder struct {
	mu     sync.Mutex
	writes []string
	err    error
}

// NewRecorder creates a recorder; a non-nil err makes every write fail
func NewRecorder(err error) *Recorder {
	return &Recorder{err: err}
}

func (r *Recorder) SetText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes = append(r.writes, text)
	return nil
}

func (r *Recorder) Text() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return "", nil
	}
	return r.writes[len(r.writes)-1], nil
}

// Writes returns every text written so far
func (r *Recorder) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.writes))
	copy(out, r.writes)
	return out
}
