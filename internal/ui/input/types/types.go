package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode. The active mode follows the modal stack:
// an error dialog wins over the edit modal, which wins over the query box.
type Mode int

const (
	ModeQuery Mode = iota
	ModeEdit
	ModeDialog
)

func (m Mode) String() string {
	switch m {
	case ModeQuery:
		return "query"
	case ModeEdit:
		return "edit"
	case ModeDialog:
		return "dialog"
	default:
		return "unknown"
	}
}

// Focus is the focused element of the edit modal
type Focus int

const (
	FocusText Focus = iota
	FocusEditButton
	FocusOkButton
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	HasSelection() bool
	PageSize() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
