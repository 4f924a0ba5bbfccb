// Package bridge hands store change events to the UI loop.
//
// The store's watcher goroutine is the only producer. The UI polls from
// inside its own update turn, so UI state is never touched from the
// producer goroutine.
package bridge

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"passgrip/internal/domain"
)

// Watcher starts background monitoring of a password store
type Watcher interface {
	Watch(ctx context.Context) (<-chan domain.ChangeEvent, domain.Snapshot, error)
}

// Bridge owns the receiver returned by Watch and the current snapshot
type Bridge struct {
	mu       sync.Mutex
	events   <-chan domain.ChangeEvent
	snapshot domain.Snapshot
	closed   bool
	logger   *zap.Logger
}

// Start performs the initial load and begins watching. A failure here is
// fatal for the program.
func Start(ctx context.Context, w Watcher, logger *zap.Logger) (*Bridge, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	events, snapshot, err := w.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start store watch: %w", err)
	}
	return &Bridge{
		events:   events,
		snapshot: snapshot,
		logger:   logger,
	}, nil
}

// Snapshot returns a copy of the current snapshot
func (b *Bridge) Snapshot() domain.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot.Clone()
}

// Poll returns the next pending event without blocking. An Updated event
// replaces the bridge snapshot before it is returned.
func (b *Bridge) Poll() (domain.ChangeEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ChangeEvent{}, false
	}

	select {
	case event, ok := <-b.events:
		if !ok {
			b.closed = true
			b.logger.Info("store event stream closed")
			return domain.ChangeEvent{}, false
		}
		if event.Type() == domain.EventUpdated {
			b.snapshot = event.Snapshot.Clone()
			b.logger.Debug("snapshot replaced", zap.Int("entries", len(b.snapshot)))
		}
		return event, true
	default:
		return domain.ChangeEvent{}, false
	}
}
