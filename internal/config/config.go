// Package config loads process settings from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	Dev      bool   `env:"DEV"`

	// TuningPath overlays AI weights from a YAML file when set.
	TuningPath string `env:"KINGDOM_AI_TUNING"`
	Seed       int64  `env:"KINGDOM_AI_SEED" envDefault:"1"`
	Difficulty string `env:"KINGDOM_AI_DIFFICULTY" envDefault:"normal"`

	JournalDir         string `env:"KINGDOM_AI_JOURNAL_DIR"`
	JournalSQLite      string `env:"KINGDOM_AI_JOURNAL_SQLITE"`
	JournalPostgresURL string `env:"KINGDOM_AI_JOURNAL_DATABASE_URL"`
	JournalRedisURL    string `env:"KINGDOM_AI_JOURNAL_REDIS_URL"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
