package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryPublisher is a Publisher that records events in memory instead of
// delivering them anywhere. It backs the service tests and is the fallback
// when a deployment runs without a broker.
type InMemoryPublisher struct {
	mu        sync.Mutex
	published []*DriverCreatedEvent
	logger    *slog.Logger

	// FailWith, when set, makes every Publish call fail with this error
	// without recording the event.
	FailWith error
}

// NewInMemoryPublisher creates a new InMemoryPublisher.
func NewInMemoryPublisher(logger *slog.Logger) *InMemoryPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryPublisher{
		logger: logger.With(slog.String("component", "in_memory_publisher")),
	}
}

// Publish implements Publisher by appending the event to the in-memory log.
func (p *InMemoryPublisher) Publish(ctx context.Context, event *DriverCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailWith != nil {
		return p.FailWith
	}

	p.published = append(p.published, event)
	p.logger.Debug("recorded driver created event",
		slog.String("event_id", event.ID),
		slog.Int64("driver_id", event.DriverID))
	return nil
}

// Published returns a copy of the events recorded so far.
func (p *InMemoryPublisher) Published() []*DriverCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*DriverCreatedEvent, len(p.published))
	copy(out, p.published)
	return out
}
