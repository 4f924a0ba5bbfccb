package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"passgrip/internal/ui/input/types"
)

// modalGlobal maps the list bindings that keep working while a modal has
// focus. ok is false when msg is not one of them.
func modalGlobal(msg tea.KeyMsg, ctx types.Context) (actions []types.Action, ok bool) {
	keys := types.Keys
	switch {
	case key.Matches(msg, keys.ModalNext):
		return []types.Action{types.NavigateAction{Delta: 1}}, true
	case key.Matches(msg, keys.ModalPrevious):
		return []types.Action{types.NavigateAction{Delta: -1}}, true
	case key.Matches(msg, keys.ModalCopy):
		if !ctx.HasSelection() {
			return nil, true
		}
		return []types.Action{types.CopyAction{}}, true
	case key.Matches(msg, keys.Clear):
		return []types.Action{types.ClearQueryAction{}}, true
	}
	return nil, false
}
