package infrastructure

import (
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
)

// channelMessageSender is the subset of *discordgo.Session used by Notifier.
type channelMessageSender interface {
	ChannelMessageSend(
		channelID string,
		content string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
}

// Notifier sends notifications to Discord channels.
type Notifier struct {
	session channelMessageSender
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{
		session: session,
	}
}

// SendMessage posts content to the channel.
func (n *Notifier) SendMessage(channelID snowflake.ID, content string) error {
	_, err := n.session.ChannelMessageSend(channelID.String(), content)
	return err
}

// Ensure Notifier implements ports.NotificationSender.
var _ ports.NotificationSender = (*Notifier)(nil)
