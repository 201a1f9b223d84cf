package ports

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// LoadResult represents the result of loading tracks.
type LoadResult struct {
	Type   LoadType
	Tracks []*TrackInfo
}

// LoadType represents the type of load result.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// TrackInfo contains information about a loaded track.
type TrackInfo struct {
	Identifier string // Unique identifier from Lavalink
	Encoded    string
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	IsStream   bool
}

// PlayRequest describes a track to load and play for a guild.
type PlayRequest struct {
	GuildID               snowflake.ID
	VoiceChannelID        snowflake.ID // Channel to join if the bot is not connected
	NotificationChannelID snowflake.ID
	RequesterID           snowflake.ID
	Query                 string // Free text or URL
}
