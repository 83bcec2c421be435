package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MEDEASE_API_URL", "MEDEASE_DATA_DIR", "MEDEASE_HTTP_TIMEOUT", "MEDEASE_LOG_LEVEL", "MEDEASE_LOG_PRETTY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, ".medease", filepath.Base(cfg.DataDir))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MEDEASE_API_URL", "https://api.medease.example")
	t.Setenv("MEDEASE_DATA_DIR", "/tmp/medease-test")
	t.Setenv("MEDEASE_HTTP_TIMEOUT", "5s")
	t.Setenv("MEDEASE_LOG_LEVEL", "debug")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://api.medease.example", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/medease-test", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}
