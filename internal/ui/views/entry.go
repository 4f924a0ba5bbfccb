package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"passgrip/internal/domain"
)

const (
	selectedMarker = "> "
	dateWidth      = len("2006-01-02")
	dateGap        = 2
)

// EntryRenderer handles rendering of result rows
type EntryRenderer struct {
	styles *Styles
}

// NewEntryRenderer creates a new entry renderer
func NewEntryRenderer(styles *Styles) *EntryRenderer {
	return &EntryRenderer{
		styles: styles,
	}
}

// RenderEntry renders one row: the name padded to width, then the
// last-updated date
func (r *EntryRenderer) RenderEntry(entry domain.Entry, isSelected bool, query string, width int) string {
	nameWidth := width - len(selectedMarker) - dateGap - dateWidth
	if nameWidth < 1 {
		nameWidth = 1
	}

	name := ansi.Truncate(entry.Name, nameWidth, "…")
	pad := nameWidth - ansi.StringWidth(name)
	if pad < 0 {
		pad = 0
	}

	bg := lipgloss.NewStyle()
	if isSelected {
		bg = r.styles.SelectionBg
	}

	marker := strings.Repeat(" ", len(selectedMarker))
	if isSelected {
		marker = selectedMarker
	}

	var b strings.Builder
	b.WriteString(bg.Render(marker))
	b.WriteString(r.highlightMatch(name, query, r.styles.Highlight.Inherit(bg), bg))
	b.WriteString(bg.Render(strings.Repeat(" ", pad+dateGap)))
	b.WriteString(r.styles.Date.Inherit(bg).Render(padLeft(entry.UpdatedLabel(), dateWidth)))
	return b.String()
}

// highlightMatch highlights the characters of text the fuzzy query matched
func (r *EntryRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return normalStyle.Render(text)
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return normalStyle.Render(text)
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, ch := range text {
		style := normalStyle
		if matched[i] {
			style = highlightStyle
		}
		b.WriteString(style.Render(string(ch)))
	}
	return b.String()
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
