package ports

import (
	"context"

	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// EventSubscriber defines the interface for subscribing to events.
// Handlers are registered with the subscriber and invoked when events occur.
type EventSubscriber interface {
	OnTrackStarted(handler func(context.Context, domain.TrackStartedEvent))
	OnTrackEnqueued(handler func(context.Context, domain.TrackEnqueuedEvent))
	OnTrackEnded(handler func(context.Context, domain.TrackEndedEvent))
}
