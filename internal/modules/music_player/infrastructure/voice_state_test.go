package infrastructure

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

func newTestVoiceState(t *testing.T, states ...*discordgo.VoiceState) *VoiceStateProvider {
	t.Helper()

	state := discordgo.NewState()
	if err := state.GuildAdd(&discordgo.Guild{ID: "1", VoiceStates: states}); err != nil {
		t.Fatalf("failed to add guild: %v", err)
	}
	return &VoiceStateProvider{state: state}
}

func TestVoiceStateProvider_GetUserVoiceChannel(t *testing.T) {
	provider := newTestVoiceState(t,
		&discordgo.VoiceState{GuildID: "1", UserID: "300", ChannelID: "100"},
		&discordgo.VoiceState{GuildID: "1", UserID: "301", ChannelID: ""},
	)

	tests := []struct {
		name     string
		guildID  snowflake.ID
		userID   snowflake.ID
		expected snowflake.ID
	}{
		{name: "user in voice", guildID: 1, userID: 300, expected: 100},
		{name: "user with empty channel", guildID: 1, userID: 301, expected: 0},
		{name: "user not in voice", guildID: 1, userID: 302, expected: 0},
		{name: "unknown guild", guildID: 2, userID: 300, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := provider.GetUserVoiceChannel(tt.guildID, tt.userID)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected channel %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestVoiceStateProvider_NilState(t *testing.T) {
	provider := &VoiceStateProvider{}

	if _, err := provider.GetUserVoiceChannel(1, 300); err == nil {
		t.Error("expected error for missing state cache")
	}
}
