package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// searchCacheKeyPrefix namespaces search cache entries in a shared Redis.
const searchCacheKeyPrefix = "tunebot:search:"

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// RedisSearchCache is a SearchCache shared through Redis, so several bot
// processes reuse each other's fallback results. Entries expire after ttl.
// Backend errors are logged and treated as misses.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSearchCache connects to Redis and verifies the connection.
func NewRedisSearchCache(
	ctx context.Context,
	config RedisConfig,
	ttl time.Duration,
) (*RedisSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("connected to Redis", "address", config.Address, "db", config.DB)

	return newRedisSearchCache(client, ttl), nil
}

func newRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		ttl:    ttl,
	}
}

func searchCacheKey(query string) string {
	return searchCacheKeyPrefix + query
}

// Lookup returns the track cached under query.
func (c *RedisSearchCache) Lookup(ctx context.Context, query string) (domain.ResolvedTrack, bool) {
	data, err := c.client.Get(ctx, searchCacheKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResolvedTrack{}, false
	}
	if err != nil {
		slog.Warn("failed to read search cache", "query", query, "error", err)
		return domain.ResolvedTrack{}, false
	}

	var track domain.ResolvedTrack
	if err := json.Unmarshal(data, &track); err != nil {
		slog.Warn("discarding malformed search cache entry", "query", query, "error", err)
		return domain.ResolvedTrack{}, false
	}
	if track.IsZero() {
		return domain.ResolvedTrack{}, false
	}

	return track, true
}

// Store caches track under query, replacing any previous entry.
func (c *RedisSearchCache) Store(ctx context.Context, query string, track domain.ResolvedTrack) {
	data, err := json.Marshal(track)
	if err != nil {
		slog.Warn("failed to encode search cache entry", "query", query, "error", err)
		return
	}

	if err := c.client.Set(ctx, searchCacheKey(query), data, c.ttl).Err(); err != nil {
		slog.Warn("failed to write search cache", "query", query, "error", err)
	}
}

// Close closes the Redis client.
func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

var _ ports.SearchCache = (*RedisSearchCache)(nil)
