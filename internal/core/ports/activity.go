package ports

import (
	"context"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// ActivityPublisher hands activity events off for asynchronous recording.
// Publish must not block the caller.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

// ActivitySink persists a single activity event.
type ActivitySink interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(domain.ActivityEvent) {}
