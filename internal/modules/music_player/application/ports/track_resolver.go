package ports

import (
	"context"

	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// MetadataResolver rewrites a music-metadata service link into a search-friendly title.
type MetadataResolver interface {
	// ResolveTitle returns the title of the track the link points to.
	ResolveTitle(ctx context.Context, link string) (string, error)
}

// FallbackSearcher finds a playable track outside the playback engine.
type FallbackSearcher interface {
	// Search returns the single best match for the query.
	Search(ctx context.Context, query string) (domain.ResolvedTrack, error)
}

// SearchCache maps queries to previously resolved tracks.
// Keys are compared by exact string equality.
type SearchCache interface {
	Lookup(ctx context.Context, query string) (domain.ResolvedTrack, bool)
	Store(ctx context.Context, query string, track domain.ResolvedTrack)
}
