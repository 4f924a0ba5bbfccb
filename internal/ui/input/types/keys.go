package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the modes react to
type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Cancel   key.Binding

	Confirm   key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	NewLine   key.Binding
	ForceQuit key.Binding

	// Global bindings that stay live while a modal has focus. Up, Down and
	// Enter keep their modal meaning there.
	ModalNext     key.Binding
	ModalPrevious key.Binding
	ModalCopy     key.Binding
}

// Keys is the active key map
var Keys = DefaultKeyMap()

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys("ctrl+n", "down"), key.WithHelp("CTRL-N:", "Next")),
		Previous:  key.NewBinding(key.WithKeys("ctrl+p", "up"), key.WithHelp("CTRL-P:", "Previous")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PGDN:", "Page down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PGUP:", "Page up")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y", "enter"), key.WithHelp("CTRL-Y:", "Copy")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("CTRL-W:", "Clear")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("CTRL-O:", "Open")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1:", "Help")),
		Quit:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("ESC:", "Quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("ESC:", "Ok")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("ENTER:", "Edit")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("TAB:", "Next field")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("SHIFT-TAB:", "Previous field")),
		NewLine:   key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("ALT-ENTER:", "New line")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("CTRL-C:", "Quit")),

		ModalNext:     key.NewBinding(key.WithKeys("ctrl+n")),
		ModalPrevious: key.NewBinding(key.WithKeys("ctrl+p")),
		ModalCopy:     key.NewBinding(key.WithKeys("ctrl+y")),
	}
}
