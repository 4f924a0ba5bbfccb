package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"passgrip/internal/ui/input/types"
)

const dialogWidth = 50

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of the main content,
// which is faded out underneath
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	base := strings.Split(pr.fade(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	for i, line := range strings.Split(styledPopup, "\n") {
		row := y + i
		if row >= len(base) {
			break
		}
		under := base[row]
		if w := ansi.StringWidth(under); w < x {
			under += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(under, x, "")
		right := ansi.TruncateLeft(under, x+ansi.StringWidth(line), "")
		base[row] = left + line + right
	}
	return strings.Join(base, "\n")
}

// RenderErrorDialog renders the "Error" dialog with its single "Ok" button
func (pr *PopupRenderer) RenderErrorDialog(message string) string {
	var b strings.Builder
	b.WriteString(pr.styles.DialogTitle.Render("Error"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(dialogWidth).Render(message))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(dialogWidth, lipgloss.Center, pr.button("Ok", true)))
	return b.String()
}

// RenderEditDialog renders the edit modal around the text area view
func (pr *PopupRenderer) RenderEditDialog(name, textArea string, focus types.Focus) string {
	var b strings.Builder
	b.WriteString(pr.styles.DialogTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(textArea)
	b.WriteString("\n\n")
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		pr.button("Edit", focus == types.FocusEditButton),
		"  ",
		pr.button("Ok", focus == types.FocusOkButton),
	)
	b.WriteString(buttons)
	return b.String()
}

func (pr *PopupRenderer) button(label string, focused bool) string {
	if focused {
		return pr.styles.ButtonFocused.Render("[ " + label + " ]")
	}
	return pr.styles.Button.Render("  " + label + "  ")
}

// fade strips styles from s and recolors it gray
func (pr *PopupRenderer) fade(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pr.styles.Faded.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
