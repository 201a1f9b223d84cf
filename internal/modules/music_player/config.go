package music_player

import "time"

// Config holds the music player module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`

	SpotifyOEmbedURL  string        `env:"SPOTIFY_OEMBED_URL" envDefault:"https://open.spotify.com/oembed"`
	MetadataTimeout   time.Duration `env:"METADATA_TIMEOUT" envDefault:"10s"`
	MetadataRateLimit float64       `env:"METADATA_RATE_LIMIT" envDefault:"5"`
	MetadataRateBurst int           `env:"METADATA_RATE_BURST" envDefault:"5"`

	YtdlpTimeout time.Duration `env:"YTDLP_TIMEOUT" envDefault:"30s"`

	SearchCacheSize int           `env:"SEARCH_CACHE_SIZE" envDefault:"512"`
	SearchCacheTTL  time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"24h"`

	// Redis replaces the in-memory search cache when Address is set.
	Redis RedisConfig `envPrefix:"REDIS_"`

	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT" envDefault:"60s"`
}

// RedisConfig holds the optional shared search cache configuration.
type RedisConfig struct {
	Address  string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}
