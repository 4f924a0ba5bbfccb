package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"passgrip/internal/ui/input/types"
)

// QueryMode is the main screen: the query box has focus and the global
// bindings act on the result list. Keys it does not consume are typed
// into the query.
type QueryMode struct{}

func NewQueryMode() *QueryMode {
	return &QueryMode{}
}

func (m *QueryMode) Name() string {
	return "query"
}

func (m *QueryMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *QueryMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	keys := types.Keys
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, keys.Next):
		return []types.Action{types.NavigateAction{Delta: 1}}, true
	case key.Matches(msg, keys.Previous):
		return []types.Action{types.NavigateAction{Delta: -1}}, true
	case key.Matches(msg, keys.PageDown):
		return []types.Action{types.NavigateAction{Delta: ctx.PageSize()}}, true
	case key.Matches(msg, keys.PageUp):
		return []types.Action{types.NavigateAction{Delta: -ctx.PageSize()}}, true
	case key.Matches(msg, keys.Copy):
		if !ctx.HasSelection() {
			return nil, true
		}
		return []types.Action{types.CopyAction{}}, true
	case key.Matches(msg, keys.Clear):
		return []types.Action{types.ClearQueryAction{}}, true
	case key.Matches(msg, keys.Open):
		if !ctx.HasSelection() {
			return nil, true
		}
		return []types.Action{types.OpenEditAction{}}, true
	case key.Matches(msg, keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}

	// Let the main handler update the query input
	return nil, false
}
