package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Responder provides an abstraction for replying to a command message.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Reply sends content as a reply to the command message.
	Reply(content string) error
}

// MessageResponder implements Responder using a live Discord session.
type MessageResponder struct {
	session *discordgo.Session
	message *discordgo.Message
}

// NewMessageResponder creates a new MessageResponder.
func NewMessageResponder(s *discordgo.Session, m *discordgo.Message) *MessageResponder {
	return &MessageResponder{
		session: s,
		message: m,
	}
}

// Reply sends a reply referencing the original message via Discord API.
func (r *MessageResponder) Reply(content string) error {
	_, err := r.session.ChannelMessageSendReply(r.message.ChannelID, content, r.message.Reference())
	return err
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	mu      sync.Mutex
	Replies []string
	Err     error
}

// Reply records the reply for testing.
func (m *MockResponder) Reply(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies = append(m.Replies, content)
	return m.Err
}

// LastReply returns the most recent reply, or "" if none was sent.
func (m *MockResponder) LastReply() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Replies) == 0 {
		return ""
	}
	return m.Replies[len(m.Replies)-1]
}
