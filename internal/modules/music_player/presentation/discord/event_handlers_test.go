package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/usecases"
)

type mockVoiceStateChangeHandler struct {
	inputs []usecases.BotVoiceStateChangeInput
}

func (m *mockVoiceStateChangeHandler) HandleBotVoiceStateChange(
	_ context.Context,
	input usecases.BotVoiceStateChangeInput,
) {
	m.inputs = append(m.inputs, input)
}

func channelPtr(id snowflake.ID) *snowflake.ID {
	return &id
}

func voiceStateUpdate(userID, guildID, channelID string) *discordgo.VoiceStateUpdate {
	return &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
		},
	}
}

func TestEventHandlers_HandleVoiceStateUpdate(t *testing.T) {
	const botID = snowflake.ID(999)

	tests := []struct {
		name          string
		event         *discordgo.VoiceStateUpdate
		expectCall    bool
		expectChannel *snowflake.ID
	}{
		{
			name:  "other user ignored",
			event: voiceStateUpdate("300", "1", "100"),
		},
		{
			name:          "bot moved",
			event:         voiceStateUpdate("999", "1", "101"),
			expectCall:    true,
			expectChannel: channelPtr(101),
		},
		{
			name:       "bot disconnected",
			event:      voiceStateUpdate("999", "1", ""),
			expectCall: true,
		},
		{
			name:  "invalid guild ID",
			event: voiceStateUpdate("999", "guild", "101"),
		},
		{
			name:  "invalid channel ID",
			event: voiceStateUpdate("999", "1", "channel"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &mockVoiceStateChangeHandler{}
			h := NewEventHandlers(botID, handler)

			h.HandleVoiceStateUpdate(nil, tt.event)

			if !tt.expectCall {
				if len(handler.inputs) != 0 {
					t.Errorf("expected no calls, got %d", len(handler.inputs))
				}
				return
			}
			if len(handler.inputs) != 1 {
				t.Fatalf("expected 1 call, got %d", len(handler.inputs))
			}

			input := handler.inputs[0]
			if input.GuildID != 1 {
				t.Errorf("expected guild 1, got %d", input.GuildID)
			}
			switch {
			case tt.expectChannel == nil && input.NewChannelID != nil:
				t.Errorf("expected nil channel, got %d", *input.NewChannelID)
			case tt.expectChannel != nil && input.NewChannelID == nil:
				t.Error("expected channel, got nil")
			case tt.expectChannel != nil && *input.NewChannelID != *tt.expectChannel:
				t.Errorf("expected channel %d, got %d", *tt.expectChannel, *input.NewChannelID)
			}
		})
	}
}
