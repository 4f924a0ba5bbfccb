package logic

import (
	"passgrip/internal/domain"
)

// ResultList holds the displayed search results, the selection cursor and
// the viewport that keeps the cursor on screen
type ResultList struct {
	results        []domain.Entry
	selectedIndex  int // -1 when the list is empty
	viewportOffset int
	viewportHeight int
}

// NewResultList creates an empty result list
func NewResultList() *ResultList {
	return &ResultList{selectedIndex: -1}
}

// Rebuild replaces the displayed results. The previously selected entry stays
// selected if it is still present, otherwise the first row is selected.
func (l *ResultList) Rebuild(results []domain.Entry) {
	previous, hadSelection := l.Current()

	l.results = results
	l.selectedIndex = -1
	if len(results) == 0 {
		l.viewportOffset = 0
		return
	}

	l.selectedIndex = 0
	if hadSelection {
		for i, e := range results {
			if e.Name == previous.Name {
				l.selectedIndex = i
				break
			}
		}
	}
	l.ensureSelectedVisible()
}

// Move shifts the selection by delta rows, stopping at either end
func (l *ResultList) Move(delta int) {
	if len(l.results) == 0 {
		return
	}
	l.selectedIndex = clamp(l.selectedIndex+delta, 0, len(l.results)-1)
	l.ensureSelectedVisible()
}

// Current returns the selected entry
func (l *ResultList) Current() (domain.Entry, bool) {
	if l.selectedIndex < 0 || l.selectedIndex >= len(l.results) {
		return domain.Entry{}, false
	}
	return l.results[l.selectedIndex], true
}

// SelectedIndex returns the cursor position, -1 when nothing is selected
func (l *ResultList) SelectedIndex() int {
	return l.selectedIndex
}

// Results returns the displayed results
func (l *ResultList) Results() []domain.Entry {
	return l.results
}

// SetViewportHeight sets how many rows fit on screen
func (l *ResultList) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	l.viewportHeight = height
	l.ensureSelectedVisible()
}

// ViewportOffset returns the index of the first visible row
func (l *ResultList) ViewportOffset() int {
	return l.viewportOffset
}

// Visible returns the rows currently on screen
func (l *ResultList) Visible() []domain.Entry {
	if l.viewportHeight == 0 {
		return l.results
	}
	end := l.viewportOffset + l.viewportHeight
	if end > len(l.results) {
		end = len(l.results)
	}
	return l.results[l.viewportOffset:end]
}

func (l *ResultList) ensureSelectedVisible() {
	if l.viewportHeight == 0 || len(l.results) == 0 {
		l.viewportOffset = 0
		return
	}

	// If selected item is above viewport, scroll up
	if l.selectedIndex < l.viewportOffset {
		l.viewportOffset = l.selectedIndex
	}

	// If selected item is below viewport, scroll down
	if l.selectedIndex >= l.viewportOffset+l.viewportHeight {
		l.viewportOffset = l.selectedIndex - l.viewportHeight + 1
	}

	// Don't leave empty rows at the bottom when the list shrank
	maxOffset := len(l.results) - l.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	l.viewportOffset = clamp(l.viewportOffset, 0, maxOffset)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
