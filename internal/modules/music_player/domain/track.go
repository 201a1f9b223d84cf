package domain

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ResolvedTrack is a title and playable URL pair produced by a resolver.
// It is a value type: copies never alias.
type ResolvedTrack struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IsZero returns true if the track carries no playable URL.
func (r ResolvedTrack) IsZero() bool {
	return r.URL == ""
}

// TrackID is the engine-side identifier of a track.
type TrackID string

// Track represents a queued, playable audio track.
type Track struct {
	ID          TrackID
	Encoded     string // Lavalink encoded track data
	Title       string
	Artist      string
	Duration    time.Duration
	URI         string
	IsStream    bool
	RequesterID snowflake.ID
	EnqueuedAt  time.Time
}

// NewTrack creates a new Track requested by requesterID.
func NewTrack(
	id TrackID,
	encoded string,
	title string,
	artist string,
	duration time.Duration,
	uri string,
	isStream bool,
	requesterID snowflake.ID,
) *Track {
	return &Track{
		ID:          id,
		Encoded:     encoded,
		Title:       title,
		Artist:      artist,
		Duration:    duration,
		URI:         uri,
		IsStream:    isStream,
		RequesterID: requesterID,
		EnqueuedAt:  time.Now().UTC(),
	}
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Encoded != "" && t.Title != ""
}

// Resolved returns the title and URL of the track.
func (t *Track) Resolved() ResolvedTrack {
	return ResolvedTrack{Title: t.Title, URL: t.URI}
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}

	totalSeconds := int(t.Duration.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
