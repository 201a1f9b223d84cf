package ports

import "github.com/sglre6355/tunebot/internal/modules/music_player/domain"

// EventPublisher defines the interface for publishing events asynchronously.
type EventPublisher interface {
	PublishTrackStarted(event domain.TrackStartedEvent)
	PublishTrackEnqueued(event domain.TrackEnqueuedEvent)
	PublishTrackEnded(event domain.TrackEndedEvent)
}
