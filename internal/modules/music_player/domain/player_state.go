package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// PlayerState represents the voice session of the bot in one guild.
// A state exists from join until leave (or an external disconnect).
type PlayerState struct {
	guildID               snowflake.ID
	voiceChannelID        snowflake.ID // Voice channel the bot is connected to
	notificationChannelID snowflake.ID // Text channel for lifecycle notifications
	Queue                 *Queue
}

// NewPlayerState creates a new PlayerState with an empty queue.
func NewPlayerState(guildID, voiceChannelID, notificationChannelID snowflake.ID) *PlayerState {
	return &PlayerState{
		guildID:               guildID,
		voiceChannelID:        voiceChannelID,
		notificationChannelID: notificationChannelID,
		Queue:                 NewQueue(),
	}
}

// GuildID returns the guild ID.
func (p *PlayerState) GuildID() snowflake.ID {
	return p.guildID
}

// VoiceChannelID returns the current voice channel ID.
func (p *PlayerState) VoiceChannelID() snowflake.ID {
	return p.voiceChannelID
}

// SetVoiceChannelID updates the voice channel ID.
func (p *PlayerState) SetVoiceChannelID(channelID snowflake.ID) {
	p.voiceChannelID = channelID
}

// NotificationChannelID returns the text channel that receives lifecycle notifications.
func (p *PlayerState) NotificationChannelID() snowflake.ID {
	return p.notificationChannelID
}

// SetNotificationChannelID updates the notification channel ID.
// A zero ID leaves the current channel unchanged.
func (p *PlayerState) SetNotificationChannelID(channelID snowflake.ID) {
	if channelID == 0 {
		return
	}
	p.notificationChannelID = channelID
}

// IsPlaying returns true if a track is at the head of the queue.
func (p *PlayerState) IsPlaying() bool {
	return !p.Queue.IsEmpty()
}
