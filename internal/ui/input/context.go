package input

import (
	"passgrip/internal/ui/logic"
	"passgrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State   *state.AppState
	Results *logic.ResultList
}

// HasSelection reports whether a result row is selected
func (c *ModelContext) HasSelection() bool {
	_, ok := c.Results.Current()
	return ok
}

// PageSize returns how many rows a page jump moves
func (c *ModelContext) PageSize() int {
	if c.State.ViewportHeight < 1 {
		return 1
	}
	return c.State.ViewportHeight
}
