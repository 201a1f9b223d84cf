package music_player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tunebot/internal/bot"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/tunebot/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/tunebot/internal/modules/music_player/presentation/discord"
)

func init() {
	bot.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides the text music commands.
type MusicPlayerModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	eventHandlers   *discord.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter
	redisCache      *infrastructure.RedisSearchCache

	// Event-driven components
	eventBus            *infrastructure.ChannelEventBus
	playbackHandler     *application.PlaybackEventHandler
	notificationHandler *application.NotificationEventHandler
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicPlayerModule) CommandHandlers() map[string]bot.CommandHandler {
	return map[string]bot.CommandHandler{
		"!join":  m.commandHandlers.HandleJoin,
		"!play":  m.commandHandlers.HandlePlay,
		"!skip":  m.commandHandlers.HandleSkip,
		"!stop":  m.commandHandlers.HandleStop,
		"!queue": m.commandHandlers.HandleQueue,
		"!leave": m.commandHandlers.HandleLeave,
	}
}

// EventHandlers returns the event handlers for this module.
// Lavalink voice forwarding and bot move/disconnect tracking are separate
// handlers so neither waits on the other's locks.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.lavalinkAdapter.OnVoiceServerUpdate,
		m.lavalinkAdapter.OnVoiceStateUpdate,
		m.eventHandlers.HandleVoiceStateUpdate,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil || deps.Session.State == nil || deps.Session.State.User == nil {
		return errors.New("music_player requires a connected session")
	}
	if m.config == nil {
		return errors.New("music_player config not loaded")
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.config.CommandTimeout)
	defer cancel()

	// Create event bus (needed by Lavalink adapter for publishing events)
	m.eventBus = infrastructure.NewChannelEventBus(infrastructure.DefaultEventBufferSize)

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(
		ctx,
		deps.Session,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
			Secure:   m.config.LavalinkSecure,
		},
		m.eventBus,
	)
	if err != nil {
		m.eventBus.Close()
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	cache, err := m.newSearchCache(ctx)
	if err != nil {
		m.lavalinkAdapter.Close()
		m.eventBus.Close()
		return err
	}

	// Create infrastructure
	repo := infrastructure.NewMemoryRepository()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)
	metadata := infrastructure.NewSpotifyResolver(infrastructure.SpotifyConfig{
		OEmbedURL: m.config.SpotifyOEmbedURL,
		Timeout:   m.config.MetadataTimeout,
		RateLimit: m.config.MetadataRateLimit,
		RateBurst: m.config.MetadataRateBurst,
	})
	fallback := infrastructure.NewYtdlpSearcher(m.config.YtdlpTimeout)

	// Create services
	player := usecases.NewPlayerService(
		repo,
		lavalinkAdapter,
		lavalinkAdapter,
		lavalinkAdapter,
		m.eventBus,
	)
	dispatcher := usecases.NewDispatcher(player, voiceState, metadata, fallback, cache)

	// Create and register application event handlers
	m.playbackHandler = application.NewPlaybackEventHandler(player, m.eventBus)
	m.notificationHandler = application.NewNotificationEventHandler(m.eventBus, notifier)
	m.playbackHandler.Start()
	m.notificationHandler.Start()

	// Create presentation handlers
	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}
	m.commandHandlers = discord.NewCommandHandlers(dispatcher, m.config.CommandTimeout)
	m.eventHandlers = discord.NewEventHandlers(botID, player)

	slog.Info("music_player module initialized with Lavalink")

	return nil
}

// newSearchCache returns the Redis cache when configured and the in-memory cache otherwise.
func (m *MusicPlayerModule) newSearchCache(ctx context.Context) (ports.SearchCache, error) {
	if m.config.Redis.Address == "" {
		slog.Debug("using in-memory search cache",
			"size", m.config.SearchCacheSize,
			"ttl", m.config.SearchCacheTTL,
		)
		return infrastructure.NewMemorySearchCache(m.config.SearchCacheSize, m.config.SearchCacheTTL), nil
	}

	cache, err := infrastructure.NewRedisSearchCache(ctx, infrastructure.RedisConfig{
		Address:  m.config.Redis.Address,
		Password: m.config.Redis.Password,
		DB:       m.config.Redis.DB,
	}, m.config.SearchCacheTTL)
	if err != nil {
		return nil, err
	}
	m.redisCache = cache

	slog.Info("using redis search cache", "address", m.config.Redis.Address)
	return cache, nil
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}

	if m.redisCache != nil {
		if err := m.redisCache.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}

