package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/bot"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/usecases"
)

// Reply texts.
const (
	replyNotInVoice       = "❌ You must be in a voice channel."
	replyJoined           = "✅ Joined the voice channel."
	replyJoinFailed       = "❌ I couldn't join the voice channel."
	replyMissingQuery     = "❌ You must provide a song name or URL."
	replyMetadataFailed   = "❌ I couldn't get the song from Spotify."
	replyNotFound         = "❌ I couldn't find the song."
	replyPlaybackFailed   = "❌ There was an error trying to play the song."
	replyNothingToSkip    = "❌ There are no more songs queued."
	replySkipped          = "⏭ Skipped."
	replyNothingPlaying   = "❌ Nothing is playing."
	replyStopped          = "🛑 Music stopped and queue cleared."
	replyQueueEmpty       = "❌ There are no songs queued."
	replyNotConnected     = "❌ I'm not in a voice channel."
	replyBye              = "👋 Bye."
	replyCachedPlayFormat = "🎶 Playing (cached): **%s**"
)

// DefaultCommandTimeout bounds a single command when no timeout is configured.
const DefaultCommandTimeout = 60 * time.Second

// CommandDispatcher is the use case layer the command handlers call into.
type CommandDispatcher interface {
	Join(ctx context.Context, input usecases.CommandInput) (*usecases.JoinOutput, error)
	Play(ctx context.Context, input usecases.PlayInput) (*usecases.PlayOutput, error)
	Skip(ctx context.Context, input usecases.CommandInput) error
	Stop(ctx context.Context, input usecases.CommandInput) error
	Queue(ctx context.Context, input usecases.CommandInput) (*usecases.QueueOutput, error)
	Leave(ctx context.Context, input usecases.CommandInput) error
}

// CommandHandlers holds all the text command handlers.
type CommandHandlers struct {
	dispatcher CommandDispatcher
	timeout    time.Duration
}

// NewCommandHandlers creates new CommandHandlers.
// Each command runs with a context bounded by timeout.
func NewCommandHandlers(dispatcher CommandDispatcher, timeout time.Duration) *CommandHandlers {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &CommandHandlers{
		dispatcher: dispatcher,
		timeout:    timeout,
	}
}

// HandleJoin handles the !join command.
func (h *CommandHandlers) HandleJoin(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	_, err = h.dispatcher.Join(ctx, input)
	switch {
	case errors.Is(err, usecases.ErrUserNotInVoice):
		return r.Reply(replyNotInVoice)
	case errors.Is(err, usecases.ErrJoinFailed):
		return r.Reply(replyJoinFailed)
	case err != nil:
		return err
	}

	return r.Reply(replyJoined)
}

// HandlePlay handles the !play command.
// A successful uncached play sends no reply; the now-playing or enqueued
// notification announces it.
func (h *CommandHandlers) HandlePlay(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	output, err := h.dispatcher.Play(ctx, usecases.PlayInput{
		CommandInput: input,
		Query:        cmd.Argument(),
	})
	switch {
	case errors.Is(err, usecases.ErrUserNotInVoice):
		return r.Reply(replyNotInVoice)
	case errors.Is(err, usecases.ErrMissingQuery):
		return r.Reply(replyMissingQuery)
	case errors.Is(err, usecases.ErrMetadataLookup):
		return r.Reply(replyMetadataFailed)
	case errors.Is(err, usecases.ErrJoinFailed):
		return r.Reply(replyJoinFailed)
	case errors.Is(err, usecases.ErrTrackNotFound):
		return r.Reply(replyNotFound)
	case errors.Is(err, usecases.ErrPlaybackFailed):
		return r.Reply(replyPlaybackFailed)
	case err != nil:
		return err
	}

	if output.Cached {
		title := ""
		if output.Track != nil {
			title = output.Track.Title
		}
		return r.Reply(fmt.Sprintf(replyCachedPlayFormat, title))
	}

	return nil
}

// HandleSkip handles the !skip command.
func (h *CommandHandlers) HandleSkip(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err = h.dispatcher.Skip(ctx, input)
	switch {
	case errors.Is(err, usecases.ErrNothingToSkip), errors.Is(err, usecases.ErrNotConnected):
		return r.Reply(replyNothingToSkip)
	case err != nil:
		return err
	}

	return r.Reply(replySkipped)
}

// HandleStop handles the !stop command.
func (h *CommandHandlers) HandleStop(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err = h.dispatcher.Stop(ctx, input)
	switch {
	case errors.Is(err, usecases.ErrNothingPlaying), errors.Is(err, usecases.ErrNotConnected):
		return r.Reply(replyNothingPlaying)
	case err != nil:
		return err
	}

	return r.Reply(replyStopped)
}

// HandleQueue handles the !queue command.
func (h *CommandHandlers) HandleQueue(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	output, err := h.dispatcher.Queue(ctx, input)
	switch {
	case errors.Is(err, usecases.ErrQueueEmpty):
		return r.Reply(replyQueueEmpty)
	case err != nil:
		return err
	}

	for _, message := range FormatQueue(output.Tracks) {
		if err := r.Reply(message); err != nil {
			return err
		}
	}
	return nil
}

// HandleLeave handles the !leave command.
func (h *CommandHandlers) HandleLeave(
	_ *discordgo.Session,
	m *discordgo.MessageCreate,
	cmd bot.Command,
	r bot.Responder,
) error {
	input, err := parseCommandInput(m, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err = h.dispatcher.Leave(ctx, input)
	switch {
	case errors.Is(err, usecases.ErrNotConnected):
		return r.Reply(replyNotConnected)
	case err != nil:
		return err
	}

	return r.Reply(replyBye)
}

// parseCommandInput extracts the IDs shared by every command from the message.
func parseCommandInput(m *discordgo.MessageCreate, cmd bot.Command) (usecases.CommandInput, error) {
	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		return usecases.CommandInput{}, fmt.Errorf("invalid guild ID: %w", err)
	}

	userID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return usecases.CommandInput{}, fmt.Errorf("invalid user ID: %w", err)
	}

	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return usecases.CommandInput{}, fmt.Errorf("invalid channel ID: %w", err)
	}

	return usecases.CommandInput{
		GuildID:       guildID,
		UserID:        userID,
		TextChannelID: channelID,
		RequestID:     cmd.RequestID,
	}, nil
}
