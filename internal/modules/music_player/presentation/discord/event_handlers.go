package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/usecases"
)

// VoiceStateChangeHandler reacts to the bot being moved or disconnected.
type VoiceStateChangeHandler interface {
	HandleBotVoiceStateChange(ctx context.Context, input usecases.BotVoiceStateChangeInput)
}

// EventHandlers handles Discord gateway events for the music player.
type EventHandlers struct {
	botID   snowflake.ID
	handler VoiceStateChangeHandler
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(botID snowflake.ID, handler VoiceStateChangeHandler) *EventHandlers {
	return &EventHandlers{
		botID:   botID,
		handler: handler,
	}
}

// HandleVoiceStateUpdate handles VoiceStateUpdate events for the bot.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	// Only handle updates for the bot itself
	if event.UserID != h.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// An empty channel ID means the bot was disconnected
	var newChannelID *snowflake.ID
	if event.ChannelID != "" {
		id, err := snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
		newChannelID = &id
	}

	h.handler.HandleBotVoiceStateChange(context.Background(), usecases.BotVoiceStateChangeInput{
		GuildID:      guildID,
		NewChannelID: newChannelID,
	})
}
