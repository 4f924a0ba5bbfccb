package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"passgrip/internal/ui/input/types"
)

// EditMode drives the edit modal: a text area plus "Edit" and "Ok" buttons
type EditMode struct {
	focus types.Focus
}

func NewEditMode() *EditMode {
	return &EditMode{}
}

func (m *EditMode) Name() string {
	return "edit"
}

func (m *EditMode) Enter(ctx types.Context) []types.Action {
	m.focus = types.FocusText
	return nil
}

func (m *EditMode) Exit(ctx types.Context) []types.Action {
	m.focus = types.FocusText
	return nil
}

// Focus returns the focused element
func (m *EditMode) Focus() types.Focus {
	return m.focus
}

func (m *EditMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	keys := types.Keys
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Cancel):
		return []types.Action{types.DismissAction{}}, true
	case key.Matches(msg, keys.FocusNext):
		m.focus = (m.focus + 1) % 3
		return nil, true
	case key.Matches(msg, keys.FocusPrev):
		m.focus = (m.focus + 2) % 3
		return nil, true
	case key.Matches(msg, keys.Confirm):
		if m.focus == types.FocusOkButton {
			return []types.Action{types.DismissAction{}}, true
		}
		return []types.Action{types.CommitEditAction{}}, true
	}
	if actions, ok := modalGlobal(msg, ctx); ok {
		return actions, true
	}

	if m.focus != types.FocusText {
		// Buttons swallow everything else
		return nil, true
	}
	return nil, false
}
