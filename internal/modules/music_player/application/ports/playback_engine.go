package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// PlaybackEngine manages per-guild voice sessions and play queues.
type PlaybackEngine interface {
	// Join connects to the voice channel, reusing an existing session in the same channel.
	Join(ctx context.Context, guildID, voiceChannelID, notificationChannelID snowflake.ID) error

	// Play loads the query and appends the first result to the guild's queue,
	// joining the request's voice channel if needed.
	Play(ctx context.Context, req PlayRequest) (*domain.Track, error)

	// Queue returns a snapshot of the guild's queue, current track first.
	// Returns nil if there is no queue.
	Queue(guildID snowflake.ID) []domain.Track

	// Skip advances to the next queued track.
	Skip(ctx context.Context, guildID snowflake.ID) error

	// Stop clears the queue and disconnects.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Leave disconnects from the voice channel.
	Leave(ctx context.Context, guildID snowflake.ID) error

	// Connected reports whether a voice session exists for the guild.
	Connected(guildID snowflake.ID) bool
}
