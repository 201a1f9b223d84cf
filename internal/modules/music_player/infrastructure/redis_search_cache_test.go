package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// unreachableRedis returns a client for a port nothing listens on.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSearchCacheKey(t *testing.T) {
	if got := searchCacheKey("Never Gonna"); got != "tunebot:search:Never Gonna" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestRedisSearchCache_BackendErrorIsMiss(t *testing.T) {
	cache := newRedisSearchCache(unreachableRedis(t), time.Hour)
	ctx := context.Background()

	// Store logs and returns; Lookup degrades to a miss
	cache.Store(ctx, "song", domain.ResolvedTrack{Title: "T", URL: "U"})

	if _, ok := cache.Lookup(ctx, "song"); ok {
		t.Error("expected miss when Redis is unreachable")
	}
}

func TestNewRedisSearchCache_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := NewRedisSearchCache(ctx, RedisConfig{Address: "127.0.0.1:1"}, time.Hour)
	if err == nil {
		t.Error("expected error for unreachable Redis")
	}
}
