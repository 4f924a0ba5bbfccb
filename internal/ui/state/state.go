package state

// AppState contains the UI state that is not owned by a widget
type AppState struct {
	// Modal state
	Errors []string      // error dialogs, last one on top
	Edit   *EditWorkflow // edit modal

	// UI state
	Width          int    // terminal width
	Height         int    // terminal height
	ViewportHeight int    // available height for the result list
	StatusMessage  string // status bar message
	Quitting       bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Edit:           NewEditWorkflow(),
		ViewportHeight: 20, // Default
	}
}

// Error dialog operations

// PushError stacks an error dialog on top of whatever is shown
func (s *AppState) PushError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// TopError returns the message of the dialog on top
func (s *AppState) TopError() (string, bool) {
	if len(s.Errors) == 0 {
		return "", false
	}
	return s.Errors[len(s.Errors)-1], true
}

// DismissError closes the dialog on top
func (s *AppState) DismissError() bool {
	if len(s.Errors) == 0 {
		return false
	}
	s.Errors = s.Errors[:len(s.Errors)-1]
	return true
}
