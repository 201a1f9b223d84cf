package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// BotVoiceStateChangeInput contains the input for handling bot voice state changes.
type BotVoiceStateChangeInput struct {
	GuildID      snowflake.ID
	NewChannelID *snowflake.ID // nil means disconnected
}

// PlayerService is the playback engine. It owns every guild's PlayerState and
// drives the voice connection and audio player through Lavalink.
// All state mutation for a guild happens while holding that guild's token.
type PlayerService struct {
	repo            domain.PlayerStateRepository
	voiceConnection ports.VoiceConnection
	audioPlayer     ports.AudioPlayer
	trackLoader     ports.TrackLoader
	publisher       ports.EventPublisher
	locks           *GuildLocker
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(
	repo domain.PlayerStateRepository,
	voiceConnection ports.VoiceConnection,
	audioPlayer ports.AudioPlayer,
	trackLoader ports.TrackLoader,
	publisher ports.EventPublisher,
) *PlayerService {
	return &PlayerService{
		repo:            repo,
		voiceConnection: voiceConnection,
		audioPlayer:     audioPlayer,
		trackLoader:     trackLoader,
		publisher:       publisher,
		locks:           NewGuildLocker(),
	}
}

// Join joins the bot to a voice channel.
func (p *PlayerService) Join(
	ctx context.Context,
	guildID, voiceChannelID, notificationChannelID snowflake.ID,
) error {
	unlock, err := p.locks.Lock(ctx, guildID)
	if err != nil {
		return err
	}
	defer unlock()

	_, err = p.join(ctx, guildID, voiceChannelID, notificationChannelID)
	return err
}

func (p *PlayerService) join(
	ctx context.Context,
	guildID, voiceChannelID, notificationChannelID snowflake.ID,
) (*domain.PlayerState, error) {
	existingState := p.repo.Get(guildID)

	// Already connected to the same channel - just update notification channel
	if existingState != nil && existingState.VoiceChannelID() == voiceChannelID {
		existingState.SetNotificationChannelID(notificationChannelID)
		return existingState, nil
	}

	if err := p.voiceConnection.JoinChannel(ctx, guildID, voiceChannelID); err != nil {
		return nil, err
	}

	if existingState != nil {
		// Moving channels - preserve queue, update channel IDs
		existingState.SetVoiceChannelID(voiceChannelID)
		existingState.SetNotificationChannelID(notificationChannelID)
		return existingState, nil
	}

	state := domain.NewPlayerState(guildID, voiceChannelID, notificationChannelID)
	p.repo.Save(state)
	return state, nil
}

// Play loads the query and appends the first result to the queue. Free text
// is searched on YouTube; URLs are loaded verbatim. If nothing was playing the
// track starts immediately, otherwise it waits behind the current one.
func (p *PlayerService) Play(ctx context.Context, req ports.PlayRequest) (*domain.Track, error) {
	query := domain.NewSearchQuery(req.Query)
	if !query.IsValid() {
		return nil, ErrNoResults
	}

	unlock, err := p.locks.Lock(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Load before joining so a bad query never moves the bot
	track, err := p.load(ctx, query, req.RequesterID)
	if err != nil {
		return nil, err
	}

	state := p.repo.Get(req.GuildID)
	if state == nil {
		state, err = p.join(ctx, req.GuildID, req.VoiceChannelID, req.NotificationChannelID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrJoinFailed, err)
		}
	} else {
		state.SetNotificationChannelID(req.NotificationChannelID)
	}

	wasIdle := state.Queue.Append(track)
	if !wasIdle {
		p.publisher.PublishTrackEnqueued(domain.TrackEnqueuedEvent{
			GuildID:               req.GuildID,
			Track:                 *track,
			Position:              state.Queue.Len(),
			NotificationChannelID: state.NotificationChannelID(),
		})
		return track, nil
	}

	if err := p.audioPlayer.Play(ctx, req.GuildID, track); err != nil {
		state.Queue.RemoveLast(track)
		return nil, err
	}

	p.publisher.PublishTrackStarted(domain.TrackStartedEvent{
		GuildID:               req.GuildID,
		Track:                 *track,
		NotificationChannelID: state.NotificationChannelID(),
	})

	return track, nil
}

func (p *PlayerService) load(
	ctx context.Context,
	query *domain.SearchQuery,
	requesterID snowflake.ID,
) (*domain.Track, error) {
	result, err := p.trackLoader.LoadTracks(ctx, query.LavalinkQuery())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	if result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError ||
		len(result.Tracks) == 0 {
		return nil, ErrNoResults
	}

	// Create domain track from first result
	trackInfo := result.Tracks[0]
	track := domain.NewTrack(
		domain.TrackID(trackInfo.Identifier),
		trackInfo.Encoded,
		trackInfo.Title,
		trackInfo.Artist,
		trackInfo.Duration,
		trackInfo.URI,
		trackInfo.IsStream,
		requesterID,
	)
	if !track.IsValid() {
		return nil, ErrNoResults
	}

	return track, nil
}

// Queue returns a snapshot of the guild's queue, or nil if there is none.
func (p *PlayerService) Queue(guildID snowflake.ID) []domain.Track {
	unlock, err := p.locks.Lock(context.Background(), guildID)
	if err != nil {
		return nil
	}
	defer unlock()

	state := p.repo.Get(guildID)
	if state == nil || state.Queue.IsEmpty() {
		return nil
	}
	return state.Queue.List()
}

// Skip drops the current track and starts the next one.
func (p *PlayerService) Skip(ctx context.Context, guildID snowflake.ID) error {
	unlock, err := p.locks.Lock(ctx, guildID)
	if err != nil {
		return err
	}
	defer unlock()

	state := p.repo.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}
	if state.Queue.Len() <= 1 {
		return ErrNothingToSkip
	}

	next := state.Queue.Advance()
	if err := p.audioPlayer.Play(ctx, guildID, next); err != nil {
		return fmt.Errorf("failed to play next track: %w", err)
	}

	p.publisher.PublishTrackStarted(domain.TrackStartedEvent{
		GuildID:               guildID,
		Track:                 *next,
		NotificationChannelID: state.NotificationChannelID(),
	})

	return nil
}

// Stop clears the queue, stops audio, and leaves the voice channel.
func (p *PlayerService) Stop(ctx context.Context, guildID snowflake.ID) error {
	unlock, err := p.locks.Lock(ctx, guildID)
	if err != nil {
		return err
	}
	defer unlock()

	state := p.repo.Get(guildID)
	if state == nil {
		return ErrNotConnected
	}

	state.Queue.Clear()

	if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
		slog.Warn("failed to stop playback", "guild", guildID, "error", err)
	}

	if err := p.voiceConnection.LeaveChannel(ctx, guildID); err != nil {
		return err
	}

	p.repo.Delete(guildID)
	return nil
}

// Leave leaves the voice channel and deletes the player state.
func (p *PlayerService) Leave(ctx context.Context, guildID snowflake.ID) error {
	unlock, err := p.locks.Lock(ctx, guildID)
	if err != nil {
		return err
	}
	defer unlock()

	if p.repo.Get(guildID) == nil {
		return ErrNotConnected
	}

	if err := p.voiceConnection.LeaveChannel(ctx, guildID); err != nil {
		return err
	}

	p.repo.Delete(guildID)
	return nil
}

// Connected reports whether a voice session exists for the guild.
func (p *PlayerService) Connected(guildID snowflake.ID) bool {
	return p.repo.Get(guildID) != nil
}

// HandleTrackEnded advances the queue when a track finished or failed to load.
// An exhausted queue leaves the bot connected and idle.
func (p *PlayerService) HandleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	if !event.Reason.ShouldAdvanceQueue() {
		return
	}

	unlock, err := p.locks.Lock(ctx, event.GuildID)
	if err != nil {
		return
	}
	defer unlock()

	state := p.repo.Get(event.GuildID)
	if state == nil {
		slog.Debug("track ended but player state not found", "guild", event.GuildID)
		return
	}

	for next := state.Queue.Advance(); next != nil; next = state.Queue.Advance() {
		err := p.audioPlayer.Play(ctx, event.GuildID, next)
		if err == nil {
			p.publisher.PublishTrackStarted(domain.TrackStartedEvent{
				GuildID:               event.GuildID,
				Track:                 *next,
				NotificationChannelID: state.NotificationChannelID(),
			})
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error(
			"failed to start next track, skipping it",
			"guild", event.GuildID,
			"track", next.Title,
			"error", err,
		)
	}

	slog.Debug("queue exhausted", "guild", event.GuildID)
}

// HandleBotVoiceStateChange handles external voice state changes (bot moved or disconnected).
func (p *PlayerService) HandleBotVoiceStateChange(ctx context.Context, input BotVoiceStateChangeInput) {
	unlock, err := p.locks.Lock(ctx, input.GuildID)
	if err != nil {
		return
	}
	defer unlock()

	state := p.repo.Get(input.GuildID)
	if state == nil {
		// No player state exists, nothing to do
		return
	}

	if input.NewChannelID == nil {
		// Bot was disconnected from voice
		p.repo.Delete(input.GuildID)
		return
	}

	// Bot was moved to a different channel
	if *input.NewChannelID != state.VoiceChannelID() {
		state.SetVoiceChannelID(*input.NewChannelID)
	}
}

// Ensure PlayerService implements the engine port.
var _ ports.PlaybackEngine = (*PlayerService)(nil)
