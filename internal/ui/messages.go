package ui

import (
	"time"
)

// drainMsg is sent on a timer to pull pending store events into the UI
type drainMsg time.Time

// clipboardExpiredMsg fires when a copied secret should leave the clipboard
type clipboardExpiredMsg struct {
	seq    int // copy it belongs to, stale timers are ignored
	secret string
}
