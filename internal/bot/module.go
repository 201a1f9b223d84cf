package bot

import "github.com/bwmarrin/discordgo"

// CommandHandler handles a parsed text command and replies through r.
type CommandHandler func(s *discordgo.Session, m *discordgo.MessageCreate, cmd Command, r Responder) error

// EventHandler is a generic handler for any Discord event.
// It should be a function matching one of discordgo's handler signatures,
// e.g., func(s *discordgo.Session, m *discordgo.VoiceStateUpdate)
type EventHandler any

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Session *discordgo.Session
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// CommandHandlers returns a map of literal command names (e.g. "!play") to their handlers.
	CommandHandlers() map[string]CommandHandler

	// EventHandlers returns event handlers for this module.
	// Each handler should match a discordgo handler signature.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	// It is called after the gateway connection is open.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before the
// Discord connection is established.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
