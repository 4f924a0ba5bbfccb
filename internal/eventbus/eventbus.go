package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"passgrip/internal/domain"
)

// DefaultCapacity is the number of events buffered between the store
// watcher and the UI
const DefaultCapacity = 64

// Bus is a single-producer, single-consumer queue of store change events.
// The watcher goroutine publishes; the UI drains Events() from its own loop.
type Bus struct {
	events    chan domain.ChangeEvent
	logger    *zap.Logger
	closeOnce sync.Once
}

// New creates a new event bus
func New(capacity int, logger *zap.Logger) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		events: make(chan domain.ChangeEvent, capacity),
		logger: logger,
	}
}

// Publish queues an event for the UI. When the queue is full it waits for
// room or for ctx to end; no event is dropped.
func (b *Bus) Publish(ctx context.Context, event domain.ChangeEvent) error {
	select {
	case b.events <- event:
		return nil
	default:
	}

	b.logger.Debug("event channel full, waiting for consumer", zap.String("type", string(event.Type())))
	select {
	case b.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events returns the receiving end handed to the Store Bridge
func (b *Bus) Events() <-chan domain.ChangeEvent {
	return b.events
}

// Close closes the channel. Only the producer may call it.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.events)
	})
}
