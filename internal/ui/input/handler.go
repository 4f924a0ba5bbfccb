package input

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"passgrip/internal/ui/input/modes"
	"passgrip/internal/ui/input/types"
)

// Handler routes keys to the active mode and owns the two text widgets:
// the query box and the edit modal's text area
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	editMode    *modes.EditMode
	queryInput  *textinput.Model
	editArea    *textarea.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.Placeholder = "Search"
	ti.Focus()

	ta := newEditArea()

	h := &Handler{
		currentMode: types.ModeQuery,
		modes:       make(map[types.Mode]types.ModeHandler),
		editMode:    modes.NewEditMode(),
		queryInput:  &ti,
		editArea:    &ta,
	}

	// Register all mode handlers
	h.modes[types.ModeQuery] = modes.NewQueryMode()
	h.modes[types.ModeEdit] = h.editMode
	h.modes[types.ModeDialog] = modes.NewDialogMode()

	return h
}

// newEditArea builds the edit modal's text area. Ctrl-N, Ctrl-P and Ctrl-W
// belong to the result list, so the widget only keeps the arrow and alt
// variants of those motions.
func newEditArea() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.KeyMap.InsertNewline = types.Keys.NewLine
	ta.KeyMap.LineNext = key.NewBinding(key.WithKeys("down"))
	ta.KeyMap.LinePrevious = key.NewBinding(key.WithKeys("up"))
	ta.KeyMap.DeleteWordBackward = key.NewBinding(key.WithKeys("alt+backspace"))
	return ta
}

// ErrNotEditable is returned by Editable for text the edit modal would
// alter on load
var ErrNotEditable = errors.New("secret contains tabs or control characters")

// Editable reports whether text survives a round trip through the edit
// modal unchanged. The text area turns tabs into spaces and drops other
// control characters, so saving such a secret would rewrite it.
func Editable(text string) error {
	ta := newEditArea()
	ta.SetValue(text)
	if ta.Value() != text {
		return ErrNotEditable
	}
	return nil
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return actions, nil
	}

	// The mode did not want the key, so it belongs to the focused text widget
	var cmd tea.Cmd
	switch h.currentMode {
	case types.ModeQuery:
		before := h.queryInput.Value()
		*h.queryInput, cmd = h.queryInput.Update(msg)
		if h.queryInput.Value() != before {
			actions = append(actions, types.UpdateTextAction{Text: h.queryInput.Value()})
		}
	case types.ModeEdit:
		before := h.editArea.Value()
		*h.editArea, cmd = h.editArea.Update(msg)
		if h.editArea.Value() != before {
			actions = append(actions, types.UpdateBufferAction{Text: h.editArea.Value()})
		}
	}
	return actions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ChangeMode switches mode. Entering ModeEdit loads data into the text area.
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) tea.Cmd {
	if mode == h.currentMode {
		return nil
	}
	if old := h.modes[h.currentMode]; old != nil {
		old.Exit(ctx)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		next.Enter(ctx)
	}

	h.queryInput.Blur()
	h.editArea.Blur()
	switch mode {
	case types.ModeQuery:
		return h.queryInput.Focus()
	case types.ModeEdit:
		h.editArea.Reset()
		h.editArea.SetValue(data)
		return h.editArea.Focus()
	}
	return nil
}

// Update handles non-keyboard messages for the focused text widget
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch h.currentMode {
	case types.ModeQuery:
		*h.queryInput, cmd = h.queryInput.Update(msg)
	case types.ModeEdit:
		*h.editArea, cmd = h.editArea.Update(msg)
	}
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// Query returns the text of the query box
func (h *Handler) Query() string {
	return h.queryInput.Value()
}

// ClearQuery empties the query box
func (h *Handler) ClearQuery() {
	h.queryInput.Reset()
}

// SetSize fits the text widgets to the terminal
func (h *Handler) SetSize(width, height int) {
	h.queryInput.Width = max(width-len("> ")-1, 1)
	h.editArea.SetWidth(max(width*2/3, 20))
	h.editArea.SetHeight(max(height/3, 3))
}

// EditFocus returns the focused element of the edit modal
func (h *Handler) EditFocus() types.Focus {
	return h.editMode.Focus()
}

func (h *Handler) QueryView() string {
	return h.queryInput.View()
}

func (h *Handler) EditView() string {
	return h.editArea.View()
}

// ShortHelp lists the bindings shown in the footer
func (h *Handler) ShortHelp() []key.Binding {
	k := types.Keys
	switch h.currentMode {
	case types.ModeEdit:
		return []key.Binding{k.Confirm, k.NewLine, k.FocusNext, k.Cancel}
	case types.ModeDialog:
		return []key.Binding{k.Cancel}
	default:
		return []key.Binding{k.Next, k.Previous, k.Copy, k.Clear, k.Open}
	}
}

// HelpSection is one titled group of bindings in the full key reference
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// FullHelp lists every binding, grouped by the screen it applies to
func (h *Handler) FullHelp() []HelpSection {
	k := types.Keys
	return []HelpSection{
		{Title: "Search", Bindings: []key.Binding{k.Next, k.Previous, k.PageDown, k.PageUp, k.Clear}},
		{Title: "Entries", Bindings: []key.Binding{k.Copy, k.Open}},
		{Title: "Edit dialog", Bindings: []key.Binding{k.Confirm, k.NewLine, k.FocusNext, k.FocusPrev, k.Cancel}},
		{Title: "Other", Bindings: []key.Binding{k.Help, k.Quit, k.ForceQuit}},
	}
}
