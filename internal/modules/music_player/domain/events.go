package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason represents why a track ended.
type TrackEndReason string

const (
	// TrackEndFinished means the track finished normally.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the track failed to load.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means the track was stopped by the user.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means the track was replaced by another.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the track was cleaned up.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should advance the queue.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// TrackStartedEvent is published when a track starts playing.
type TrackStartedEvent struct {
	GuildID               snowflake.ID
	Track                 Track
	NotificationChannelID snowflake.ID
}

// TrackEnqueuedEvent is published when a track is added behind a playing one.
type TrackEnqueuedEvent struct {
	GuildID               snowflake.ID
	Track                 Track
	Position              int // 1-indexed position in the queue
	NotificationChannelID snowflake.ID
}

// TrackEndedEvent is published when a track ends (from Lavalink).
type TrackEndedEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
}
