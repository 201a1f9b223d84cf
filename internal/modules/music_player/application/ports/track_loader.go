package ports

import (
	"context"
)

// TrackLoader defines the interface for loading/searching tracks on the playback engine.
type TrackLoader interface {
	// LoadTracks searches for tracks using the given query.
	LoadTracks(ctx context.Context, query string) (*LoadResult, error)
}
