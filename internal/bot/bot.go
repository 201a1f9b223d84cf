package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Intents requested from the gateway. Message content is required to read text commands.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentsGuildMessages |
	discordgo.IntentMessageContent

// genericErrorReply is sent when a handler fails unexpectedly.
const genericErrorReply = "❌ An error occurred while processing your command."

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config   *Config
	session  *discordgo.Session
	modules  []Module
	handlers map[string]CommandHandler
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:   cfg,
		modules:  make([]Module, 0),
		handlers: make(map[string]CommandHandler),
	}
}

// LoadModules loads modules from the global registry and their configuration.
func (b *Bot) LoadModules() error {
	b.modules = Modules()

	for _, mod := range b.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}

	return nil
}

// Start connects to Discord and initializes modules.
// A failed login is returned as an error and is expected to be fatal.
func (b *Bot) Start() error {
	session, err := discordgo.New("Bot " + b.config.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = Intents
	b.session = session

	// Open first: modules need the bot's own user ID from the ready state.
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	b.buildHandlerMap()

	b.session.AddHandler(b.handleMessageCreate)
	b.registerEventHandlers()

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"commands", len(b.handlers),
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session: b.session,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildHandlerMap builds the command name to handler mapping.
// A command claimed by two modules keeps the first registration.
func (b *Bot) buildHandlerMap() {
	for _, mod := range b.modules {
		for name, handler := range mod.CommandHandlers() {
			if _, exists := b.handlers[name]; exists {
				slog.Warn("ignoring duplicate command handler", "command", name, "module", mod.Name())
				continue
			}
			b.handlers[name] = handler
		}
	}
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

// handleMessageCreate is the discordgo event handler for MessageCreate events.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(s, m, NewMessageResponder(s, m.Message))
}

// handleMessage routes a guild message to the handler of the command it names.
// Bot authors, direct messages, and unknown commands are ignored without a reply.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate, r Responder) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if s != nil && s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	cmd, ok := ParseCommand(m.Content)
	if !ok {
		return
	}

	handler, ok := b.handlers[cmd.Name]
	if !ok {
		slog.Debug("ignoring unknown command", "command", cmd.Name, "guild", m.GuildID)
		return
	}

	cmd.RequestID = uuid.NewString()
	logger := slog.With(
		"request_id", cmd.RequestID,
		"command", cmd.Name,
		"guild", m.GuildID,
		"user", m.Author.ID,
	)
	logger.Debug("handling command")

	if err := handler(s, m, cmd, r); err != nil {
		logger.Error("failed to handle command", "error", err)
		if replyErr := r.Reply(genericErrorReply); replyErr != nil {
			logger.Error("failed to send error reply", "error", replyErr)
		}
	}
}
