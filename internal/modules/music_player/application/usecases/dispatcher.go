package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// CommandInput carries the context shared by every command.
type CommandInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
	RequestID     string
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
}

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	CommandInput
	Query string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Track  *domain.Track
	Cached bool // true if the track came from the search cache
}

// QueueOutput contains the result of the Queue use case.
type QueueOutput struct {
	Tracks []domain.Track // current track first
}

// Dispatcher validates command preconditions and resolves queries before
// handing them to the playback engine.
type Dispatcher struct {
	engine     ports.PlaybackEngine
	voiceState ports.VoiceStateProvider
	metadata   ports.MetadataResolver
	fallback   ports.FallbackSearcher
	cache      ports.SearchCache
	locks      *GuildLocker
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	engine ports.PlaybackEngine,
	voiceState ports.VoiceStateProvider,
	metadata ports.MetadataResolver,
	fallback ports.FallbackSearcher,
	cache ports.SearchCache,
) *Dispatcher {
	return &Dispatcher{
		engine:     engine,
		voiceState: voiceState,
		metadata:   metadata,
		fallback:   fallback,
		cache:      cache,
		locks:      NewGuildLocker(),
	}
}

func (d *Dispatcher) logger(input CommandInput) *slog.Logger {
	return slog.With("request_id", input.RequestID, "guild", input.GuildID)
}

// userVoiceChannel returns the caller's voice channel or ErrUserNotInVoice.
func (d *Dispatcher) userVoiceChannel(input CommandInput) (snowflake.ID, error) {
	channelID, err := d.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return 0, err
	}
	if channelID == 0 {
		return 0, ErrUserNotInVoice
	}
	return channelID, nil
}

// Join joins the caller's voice channel.
func (d *Dispatcher) Join(ctx context.Context, input CommandInput) (*JoinOutput, error) {
	voiceChannelID, err := d.userVoiceChannel(input)
	if err != nil {
		return nil, err
	}

	unlock, err := d.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := d.engine.Join(ctx, input.GuildID, voiceChannelID, input.TextChannelID); err != nil {
		d.logger(input).Error("failed to join voice channel",
			"channel", voiceChannelID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrJoinFailed, err)
	}

	return &JoinOutput{VoiceChannelID: voiceChannelID}, nil
}

// Play resolves the query and plays it in the caller's voice channel.
//
// Metadata-service links are first rewritten to a track title. A cached result
// for the query is played directly. Otherwise the engine searches the query
// itself, and on failure an external search is tried whose result is cached.
func (d *Dispatcher) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	voiceChannelID, err := d.userVoiceChannel(input.CommandInput)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, ErrMissingQuery
	}

	logger := d.logger(input.CommandInput)

	if domain.IsSpotifyLink(query) {
		title, err := d.metadata.ResolveTitle(ctx, query)
		if err != nil {
			logger.Error("failed to resolve metadata link", "query", query, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrMetadataLookup, err)
		}
		logger.Debug("resolved metadata link", "query", query, "title", title)
		query = title
	}

	unlock, err := d.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	req := ports.PlayRequest{
		GuildID:               input.GuildID,
		VoiceChannelID:        voiceChannelID,
		NotificationChannelID: input.TextChannelID,
		RequesterID:           input.UserID,
	}

	if cached, ok := d.cache.Lookup(ctx, query); ok {
		req.Query = cached.URL
		track, err := d.engine.Play(ctx, req)
		if err == nil {
			return &PlayOutput{Track: track, Cached: true}, nil
		}
		if errors.Is(err, ErrJoinFailed) {
			logger.Error("failed to join voice channel", "error", err)
			return nil, err
		}
		logger.Warn("failed to play cached track", "query", query, "url", cached.URL, "error", err)
	}

	req.Query = query
	track, err := d.engine.Play(ctx, req)
	if err == nil {
		return &PlayOutput{Track: track}, nil
	}
	if errors.Is(err, ErrJoinFailed) {
		logger.Error("failed to join voice channel", "error", err)
		return nil, err
	}
	logger.Warn("engine failed to play query, trying fallback search", "query", query, "error", err)

	resolved, err := d.fallback.Search(ctx, query)
	if err != nil {
		logger.Error("fallback search failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTrackNotFound, err)
	}

	d.cache.Store(ctx, query, resolved)

	req.Query = resolved.URL
	track, err = d.engine.Play(ctx, req)
	if err != nil {
		logger.Error("failed to play fallback result",
			"query", query,
			"url", resolved.URL,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrPlaybackFailed, err)
	}

	return &PlayOutput{Track: track}, nil
}

// Skip advances to the next queued track.
// The engine is never asked to skip unless another track is waiting.
func (d *Dispatcher) Skip(ctx context.Context, input CommandInput) error {
	unlock, err := d.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return err
	}
	defer unlock()

	if len(d.engine.Queue(input.GuildID)) <= 1 {
		return ErrNothingToSkip
	}

	return d.engine.Skip(ctx, input.GuildID)
}

// Stop clears the queue and disconnects.
func (d *Dispatcher) Stop(ctx context.Context, input CommandInput) error {
	unlock, err := d.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return err
	}
	defer unlock()

	if len(d.engine.Queue(input.GuildID)) == 0 {
		return ErrNothingPlaying
	}

	return d.engine.Stop(ctx, input.GuildID)
}

// Queue returns the guild's queue.
func (d *Dispatcher) Queue(_ context.Context, input CommandInput) (*QueueOutput, error) {
	tracks := d.engine.Queue(input.GuildID)
	if len(tracks) == 0 {
		return nil, ErrQueueEmpty
	}
	return &QueueOutput{Tracks: tracks}, nil
}

// Leave disconnects from the guild's voice channel.
func (d *Dispatcher) Leave(ctx context.Context, input CommandInput) error {
	unlock, err := d.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return err
	}
	defer unlock()

	if !d.engine.Connected(input.GuildID) {
		return ErrNotConnected
	}

	return d.engine.Leave(ctx, input.GuildID)
}
