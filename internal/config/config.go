// Package config loads the desktop client configuration from the
// environment, optionally seeded from a .env file next to the binary.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the client needs to reach the MedEase backend
// and keep its local state.
type Config struct {
	// APIBaseURL is the root of the MedEase REST backend.
	APIBaseURL string `env:"MEDEASE_API_URL, default=http://localhost:5000"`
	// DataDir is where the session database lives. Empty means
	// ~/.medease.
	DataDir string `env:"MEDEASE_DATA_DIR"`

	HTTPTimeout time.Duration `env:"MEDEASE_HTTP_TIMEOUT, default=30s"`

	LogLevel  string `env:"MEDEASE_LOG_LEVEL, default=info"`
	LogPretty bool   `env:"MEDEASE_LOG_PRETTY, default=true"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".medease")
	}
	return &cfg, nil
}
