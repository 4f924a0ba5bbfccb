package types

// Navigation actions
type NavigateAction struct {
	Delta int // rows to move, negative is up
}

func (a NavigateAction) Type() string { return "navigate" }

// Clipboard actions
type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

// Query actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

// Edit actions
type OpenEditAction struct{}

func (a OpenEditAction) Type() string { return "open_edit" }

type UpdateBufferAction struct {
	Text string
}

func (a UpdateBufferAction) Type() string { return "update_buffer" }

type CommitEditAction struct{}

func (a CommitEditAction) Type() string { return "commit_edit" }

// ShowHelpAction opens the key reference in a pager
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

// DismissAction is the "Ok" button: it closes the dialog on top
type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for Esc on the main screen
}

func (a QuitAction) Type() string { return "quit" }
