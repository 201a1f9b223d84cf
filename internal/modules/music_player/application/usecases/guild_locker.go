package usecases

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/semaphore"
)

// GuildLocker hands out one mutual-exclusion token per guild.
// Tokens are never removed.
type GuildLocker struct {
	mu    sync.Mutex
	locks map[snowflake.ID]*semaphore.Weighted
}

// NewGuildLocker creates a new GuildLocker.
func NewGuildLocker() *GuildLocker {
	return &GuildLocker{
		locks: make(map[snowflake.ID]*semaphore.Weighted),
	}
}

// Lock blocks until the guild's token is acquired or ctx is done.
// The returned function releases the token and must be called exactly once.
func (l *GuildLocker) Lock(ctx context.Context, guildID snowflake.ID) (func(), error) {
	sem := l.get(guildID)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var once sync.Once
	return func() { once.Do(func() { sem.Release(1) }) }, nil
}

func (l *GuildLocker) get(guildID snowflake.ID) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.locks[guildID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.locks[guildID] = sem
	}
	return sem
}
