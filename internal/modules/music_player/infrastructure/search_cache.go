package infrastructure

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// MemorySearchCache is a process-local SearchCache bounded by entry count and age.
// The least recently used entry is evicted when the cache is full.
type MemorySearchCache struct {
	entries *expirable.LRU[string, domain.ResolvedTrack]
}

// NewMemorySearchCache creates a cache holding at most size entries for at most ttl each.
func NewMemorySearchCache(size int, ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: expirable.NewLRU[string, domain.ResolvedTrack](size, nil, ttl),
	}
}

// Lookup returns the track cached under query.
func (c *MemorySearchCache) Lookup(_ context.Context, query string) (domain.ResolvedTrack, bool) {
	return c.entries.Get(query)
}

// Store caches track under query, replacing any previous entry.
func (c *MemorySearchCache) Store(_ context.Context, query string, track domain.ResolvedTrack) {
	c.entries.Add(query, track)
}

// Len returns the number of cached entries.
func (c *MemorySearchCache) Len() int {
	return c.entries.Len()
}

var _ ports.SearchCache = (*MemorySearchCache)(nil)
