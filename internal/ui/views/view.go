package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"passgrip/internal/domain"
	"passgrip/internal/ui/input/types"
)

// Rows the frame uses besides the result list: padding, title, query,
// blank line, status and footer
const chromeHeight = 7

// ViewportHeight returns how many result rows fit in a terminal of height rows
func ViewportHeight(height int) int {
	return max(height-chromeHeight, 1)
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Query          string // rendered query input
	QueryText      string // raw query, for match highlighting
	Results        []domain.Entry
	Visible        []domain.Entry // rows on screen, starting at ViewportOffset
	Total          int            // entries in the snapshot
	SelectedIndex  int
	ViewportOffset int
	StatusMessage  string
	HelpModel      help.Model
	HelpBindings   []key.Binding
	ErrorMessage   string // top error dialog, empty when none
	EditOpen       bool
	EditName       string
	EditView       string
	EditFocus      types.Focus
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	entryRender *EntryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		entryRender: NewEntryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the palette used by the renderer
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	contentWidth := termWidth - 4 // Account for main container padding

	content := &strings.Builder{}

	// Title with match count on the right
	logo := r.styles.Title.Render("passgrip")
	count := r.styles.Count.Render(fmt.Sprintf("%d/%d", len(state.Results), state.Total))
	paddingWidth := contentWidth - lipgloss.Width(logo) - lipgloss.Width(count)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	content.WriteString(logo + strings.Repeat(" ", paddingWidth) + count)
	content.WriteString("\n")

	content.WriteString(r.styles.Prompt.Render("> "))
	content.WriteString(state.Query)
	content.WriteString("\n\n")

	// Main content
	if len(state.Results) == 0 {
		if state.Total == 0 {
			content.WriteString(r.styles.Dim.Render("The password store is empty."))
		} else {
			content.WriteString(r.styles.Dim.Render("No matching entries."))
		}
		content.WriteString("\n")
	} else {
		content.WriteString(r.renderEntryList(state, contentWidth))
	}

	// Pad so status and footer stay at the bottom
	currentLines := strings.Count(content.String(), "\n")
	availableLines := state.Height - 2 // Padding(1, 2)
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	if paddingNeeded := availableLines - currentLines - 2; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}

	if state.StatusMessage != "" {
		content.WriteString(r.styles.StatusSuccess.Render(state.StatusMessage))
	}
	content.WriteString("\n")
	content.WriteString(state.HelpModel.ShortHelpView(state.HelpBindings))

	mainStyle := r.styles.Main.MaxHeight(max(state.Height, 1))
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content, error dialog first
	if state.ErrorMessage != "" {
		popup := r.popupRender.RenderErrorDialog(state.ErrorMessage)
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, termWidth, r.styles.ErrorDialog)
	}

	if state.EditOpen {
		popup := r.popupRender.RenderEditDialog(state.EditName, state.EditView, state.EditFocus)
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, termWidth, r.styles.Dialog)
	}

	return finalContent
}

// renderEntryList renders the rows inside the viewport
func (r *Renderer) renderEntryList(state ViewState, width int) string {
	var b strings.Builder
	for i, e := range state.Visible {
		selected := state.ViewportOffset+i == state.SelectedIndex
		b.WriteString(r.entryRender.RenderEntry(e, selected, state.QueryText, width))
		b.WriteString("\n")
	}
	return b.String()
}

// NewHelpModel returns the footer help styled like the rest of the frame
func NewHelpModel(styles *Styles) help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help
	return h
}
