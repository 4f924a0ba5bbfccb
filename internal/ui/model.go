package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"passgrip/internal/clipboard"
	"passgrip/internal/config"
	"passgrip/internal/domain"
	"passgrip/internal/ui/input"
	inputtypes "passgrip/internal/ui/input/types"
	"passgrip/internal/ui/logic"
	"passgrip/internal/ui/state"
	"passgrip/internal/ui/views"
)

// EventSource is the store side as seen from the UI: the current snapshot
// and a non-blocking poll for change events
type EventSource interface {
	Snapshot() domain.Snapshot
	Poll() (domain.ChangeEvent, bool)
}

// Model represents the UI state
type Model struct {
	source EventSource
	sink   clipboard.Sink
	config *config.Config
	logger *zap.Logger
	state  *state.AppState // centralized state

	help  help.Model
	total int // entries in the snapshot last searched

	// Handlers
	results      *logic.ResultList // displayed results and cursor
	renderer     *views.Renderer   // view renderer
	helpRenderer *HelpRenderer     // key reference for the pager
	inputHandler *input.Handler    // input handling

	copySeq int // bumped on every copy so older clear timers do nothing
}

// NewModel creates a new UI model showing the whole snapshot
func NewModel(source EventSource, sink clipboard.Sink, cfg *config.Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := views.NewRenderer()

	m := &Model{
		source:       source,
		sink:         sink,
		config:       cfg,
		logger:       logger,
		state:        state.NewAppState(),
		help:         views.NewHelpModel(renderer.Styles()),
		results:      logic.NewResultList(),
		renderer:     renderer,
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
	}
	m.results.SetViewportHeight(m.state.ViewportHeight)
	m.refresh()
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), m.drainTick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		// Create context for input handler
		ctx := m.inputContext()

		// Handle input through the handler
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		// Process actions
		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		if cmd := m.syncMode(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case drainMsg:
		m.drain()
		return m, tea.Batch(m.syncMode(), m.drainTick())

	case clipboardExpiredMsg:
		m.expireClipboard(msg)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			m.showError(fmt.Errorf("failed to show help: %w", msg.err))
			return m, m.syncMode()
		}
		return m, nil

	default:
		// Handle non-keyboard messages
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Quitting {
		return ""
	}

	vs := views.ViewState{
		Width:          m.state.Width,
		Height:         m.state.Height,
		Query:          m.inputHandler.QueryView(),
		QueryText:      m.inputHandler.Query(),
		Results:        m.results.Results(),
		Visible:        m.results.Visible(),
		Total:          m.total,
		SelectedIndex:  m.results.SelectedIndex(),
		ViewportOffset: m.results.ViewportOffset(),
		StatusMessage:  m.state.StatusMessage,
		HelpModel:      m.help,
		HelpBindings:   m.inputHandler.ShortHelp(),
	}
	if msg, ok := m.state.TopError(); ok {
		vs.ErrorMessage = msg
	}
	if session, ok := m.state.Edit.Session(); ok {
		vs.EditOpen = true
		vs.EditName = session.Original.Name
		vs.EditView = m.inputHandler.EditView()
		vs.EditFocus = m.inputHandler.EditFocus()
	}
	return m.renderer.Render(vs)
}

// drain handles every event the store produced since the last turn
func (m *Model) drain() {
	for {
		event, ok := m.source.Poll()
		if !ok {
			return
		}
		switch event.Kind {
		case domain.EventUpdated:
			m.refresh()
			m.logger.Debug("store updated", zap.Int("entries", m.total))
		case domain.EventError:
			m.logger.Warn("store error", zap.Error(event.Err))
			m.showError(event.Err)
		}
	}
}

// refresh re-runs the search for the current query over the latest snapshot
func (m *Model) refresh() {
	snapshot := m.source.Snapshot()
	m.total = len(snapshot)
	m.results.Rebuild(logic.Search(snapshot, m.inputHandler.Query()))
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.results.Move(a.Delta)

	case inputtypes.UpdateTextAction:
		m.refresh()

	case inputtypes.ClearQueryAction:
		m.inputHandler.ClearQuery()
		m.refresh()

	case inputtypes.CopyAction:
		return m.copySelected()

	case inputtypes.OpenEditAction:
		entry, ok := m.results.Current()
		if err := m.state.Edit.Open(entry, ok); err != nil {
			m.showError(err)
			return nil
		}
		if session, ok := m.state.Edit.Session(); ok {
			if err := input.Editable(session.Buffer); err != nil {
				m.state.Edit.Dismiss()
				m.showError(fmt.Errorf("cannot edit %s: %w", session.Original.Name, err))
			}
		}

	case inputtypes.UpdateBufferAction:
		m.state.Edit.SetBuffer(a.Text)

	case inputtypes.CommitEditAction:
		entry, err := m.state.Edit.Confirm()
		if err != nil {
			m.showError(err)
			return nil
		}
		m.logger.Info("entry updated", zap.String("entry", entry.Name))
		m.state.StatusMessage = fmt.Sprintf("Saved %s", entry.Name)

	case inputtypes.ShowHelpAction:
		return showHelp(m.helpRenderer.RenderHelpContent(m.inputHandler.FullHelp()))

	case inputtypes.DismissAction:
		if !m.state.DismissError() {
			m.state.Edit.Dismiss()
		}

	case inputtypes.QuitAction:
		m.state.Quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) copySelected() tea.Cmd {
	entry, ok := m.results.Current()
	if !ok {
		return nil
	}
	secret, err := entry.Secret()
	if err != nil {
		m.showError(fmt.Errorf("failed to read %s: %w", entry.Name, err))
		return nil
	}
	if err := m.sink.SetText(secret); err != nil {
		m.showError(fmt.Errorf("failed to copy %s: %w", entry.Name, err))
		return nil
	}

	m.logger.Info("copied entry", zap.String("entry", entry.Name))
	m.state.StatusMessage = fmt.Sprintf("Copied %s", entry.Name)

	m.copySeq++
	after := m.config.ClipboardClearAfter
	if after <= 0 {
		return nil
	}
	seq := m.copySeq
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clipboardExpiredMsg{seq: seq, secret: secret}
	})
}

func (m *Model) expireClipboard(msg clipboardExpiredMsg) {
	if msg.seq != m.copySeq {
		return
	}
	cleared, err := clipboard.Expire(m.sink, msg.secret)
	if err != nil {
		m.logger.Warn("failed to clear clipboard", zap.Error(err))
		return
	}
	if cleared {
		m.state.StatusMessage = "Clipboard cleared"
	}
}

func (m *Model) showError(err error) {
	m.state.PushError(err.Error())
}

// syncMode points the input handler at the modal on top
func (m *Model) syncMode() tea.Cmd {
	mode, data := inputtypes.ModeQuery, ""
	if session, ok := m.state.Edit.Session(); ok {
		mode, data = inputtypes.ModeEdit, session.Buffer
	}
	if _, ok := m.state.TopError(); ok {
		mode = inputtypes.ModeDialog
	}
	if prev := m.inputHandler.CurrentMode(); prev != mode {
		m.logger.Debug("input mode changed", zap.Stringer("from", prev), zap.Stringer("to", mode))
	}
	return m.inputHandler.ChangeMode(mode, data, m.inputContext())
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:   m.state,
		Results: m.results,
	}
}

func (m *Model) updateViewportHeight() {
	m.state.ViewportHeight = views.ViewportHeight(m.state.Height)
	m.results.SetViewportHeight(m.state.ViewportHeight)
	m.inputHandler.SetSize(m.state.Width, m.state.Height)
}

// drainTick schedules the next drain
func (m *Model) drainTick() tea.Cmd {
	return tea.Tick(m.config.PollInterval, func(t time.Time) tea.Msg {
		return drainMsg(t)
	})
}
