package state

import (
	"errors"
	"fmt"

	"passgrip/internal/domain"
)

// ErrEditClosed is returned when an edit operation needs an open session
var ErrEditClosed = errors.New("no edit in progress")

// EditSession is the entry being edited plus the text the user typed so far
type EditSession struct {
	Original domain.Entry
	Buffer   string
}

// EditWorkflow is the Closed/Open state machine behind the edit modal.
// A nil session means Closed.
type EditWorkflow struct {
	session *EditSession
}

// NewEditWorkflow creates a closed workflow
func NewEditWorkflow() *EditWorkflow {
	return &EditWorkflow{}
}

// IsOpen reports whether an edit session is in progress
func (w *EditWorkflow) IsOpen() bool {
	return w.session != nil
}

// Session returns the open session
func (w *EditWorkflow) Session() (EditSession, bool) {
	if w.session == nil {
		return EditSession{}, false
	}
	return *w.session, true
}

// Open starts editing entry with its current secret as the initial buffer.
// Nothing happens when ok is false (no selection) or a session is already
// open. A failed secret fetch leaves the workflow closed.
func (w *EditWorkflow) Open(entry domain.Entry, ok bool) error {
	if !ok || w.session != nil {
		return nil
	}
	secret, err := entry.Secret()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", entry.Name, err)
	}
	w.session = &EditSession{Original: entry, Buffer: secret}
	return nil
}

// SetBuffer replaces the edited text
func (w *EditWorkflow) SetBuffer(text string) {
	if w.session != nil {
		w.session.Buffer = text
	}
}

// Confirm writes the buffer to the entry and closes the session whether or
// not the write succeeded. The typed text is lost on failure.
func (w *EditWorkflow) Confirm() (domain.Entry, error) {
	if w.session == nil {
		return domain.Entry{}, ErrEditClosed
	}
	session := w.session
	w.session = nil

	if err := session.Original.Update(session.Buffer); err != nil {
		return session.Original, fmt.Errorf("failed to update %s: %w", session.Original.Name, err)
	}
	return session.Original, nil
}

// Dismiss closes the session without writing anything
func (w *EditWorkflow) Dismiss() {
	w.session = nil
}
