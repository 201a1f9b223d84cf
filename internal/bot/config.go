package bot

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	Token string    `env:"TOKEN,notEmpty"`
	Log   LogConfig `envPrefix:"LOG_"`
}

// LogConfig controls the process-wide slog logger.
type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	Format     string `env:"FORMAT" envDefault:"json"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"FILE_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"FILE_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"FILE_MAX_AGE_DAYS" envDefault:"28"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
