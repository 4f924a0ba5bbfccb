package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"passgrip/internal/ui/input/types"
)

// DialogMode handles the error dialog. Its only button is "Ok". Typing is
// swallowed but the list bindings still work.
type DialogMode struct{}

func NewDialogMode() *DialogMode {
	return &DialogMode{}
}

func (m *DialogMode) Name() string {
	return "dialog"
}

func (m *DialogMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DialogMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DialogMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	keys := types.Keys
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Confirm), key.Matches(msg, keys.Cancel):
		return []types.Action{types.DismissAction{}}, true
	}
	if actions, ok := modalGlobal(msg, ctx); ok {
		return actions, true
	}
	return nil, true
}
