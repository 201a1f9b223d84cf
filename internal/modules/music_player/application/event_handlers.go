package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// TrackEndHandler reacts to a track ending on the playback engine.
type TrackEndHandler interface {
	HandleTrackEnded(ctx context.Context, event domain.TrackEndedEvent)
}

// PlaybackEventHandler handles events related to playback control.
// It subscribes to TrackEnded events to keep the queue moving.
type PlaybackEventHandler struct {
	engine     TrackEndHandler
	subscriber ports.EventSubscriber
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	engine TrackEndHandler,
	subscriber ports.EventSubscriber,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		engine:     engine,
		subscriber: subscriber,
	}
}

// Start registers event handlers with the subscriber.
func (h *PlaybackEventHandler) Start() {
	h.subscriber.OnTrackEnded(h.handleTrackEnded)

	slog.Debug("playback event handlers properly registered")
}

func (h *PlaybackEventHandler) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	slog.Debug("track ended", "guild", event.GuildID, "reason", event.Reason)
	h.engine.HandleTrackEnded(ctx, event)
}

// NotificationEventHandler posts playback lifecycle messages to the text
// channel the triggering command came from. Sends are fire-and-forget.
type NotificationEventHandler struct {
	subscriber ports.EventSubscriber
	notifier   ports.NotificationSender
}

// NewNotificationEventHandler creates a new NotificationEventHandler.
func NewNotificationEventHandler(
	subscriber ports.EventSubscriber,
	notifier ports.NotificationSender,
) *NotificationEventHandler {
	return &NotificationEventHandler{
		subscriber: subscriber,
		notifier:   notifier,
	}
}

// Start registers event handlers with the subscriber.
func (h *NotificationEventHandler) Start() {
	h.subscriber.OnTrackStarted(h.handleTrackStarted)
	h.subscriber.OnTrackEnqueued(h.handleTrackEnqueued)

	slog.Debug("notification event handlers properly registered")
}

// NowPlayingMessage renders the track started notification.
func NowPlayingMessage(track domain.Track) string {
	return fmt.Sprintf("▶️ Now playing: %s `[%s]`", track.Title, track.FormattedDuration())
}

// EnqueuedMessage renders the track enqueued notification.
func EnqueuedMessage(track domain.Track) string {
	return fmt.Sprintf("➕ %s added to the queue.", track.Title)
}

func (h *NotificationEventHandler) handleTrackStarted(_ context.Context, event domain.TrackStartedEvent) {
	h.send(event.NotificationChannelID, NowPlayingMessage(event.Track), "TrackStarted", event.GuildID)
}

func (h *NotificationEventHandler) handleTrackEnqueued(
	_ context.Context,
	event domain.TrackEnqueuedEvent,
) {
	h.send(event.NotificationChannelID, EnqueuedMessage(event.Track), "TrackEnqueued", event.GuildID)
}

func (h *NotificationEventHandler) send(
	channelID snowflake.ID,
	content string,
	eventType string,
	guildID snowflake.ID,
) {
	if channelID == 0 {
		slog.Debug("no notification channel, dropping notification", "type", eventType, "guild", guildID)
		return
	}

	if err := h.notifier.SendMessage(channelID, content); err != nil {
		slog.Warn(
			"failed to send notification",
			"type", eventType,
			"guild", guildID,
			"channel", channelID,
			"error", err,
		)
	}
}
