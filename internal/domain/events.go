package domain

// EventType represents the kind of change event
type EventType string

// Event types
const (
	EventUpdated EventType = "Updated"
	EventError   EventType = "Error"
)

// ChangeEvent is a background notification that the store changed or
// that change detection failed
type ChangeEvent struct {
	Kind     EventType
	Snapshot Snapshot // the new snapshot, set for EventUpdated
	Err      error    // the cause, set for EventError
}

// Type returns the event kind
func (e ChangeEvent) Type() EventType { return e.Kind }

// UpdatedEvent creates an event announcing a new snapshot
func UpdatedEvent(s Snapshot) ChangeEvent {
	return ChangeEvent{Kind: EventUpdated, Snapshot: s}
}

// ErrorEvent creates an event carrying a background failure
func ErrorEvent(err error) ChangeEvent {
	return ChangeEvent{Kind: EventError, Err: err}
}
