package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Zero(t, cfg.Backend.Timeout, "no client timeout unless configured")
	assert.Equal(t, 10*time.Millisecond, cfg.Backend.RateInterval)
	assert.Equal(t, 20, cfg.Backend.RateBurst)
	assert.Equal(t, 8, cfg.Storefront.FeaturedLimit)
	assert.Equal(t, 10, cfg.Storefront.RecentOrdersLimit)
	assert.Equal(t, 3*time.Second, cfg.Storefront.ToastLifetime)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CategoriesTTL)
	assert.Empty(t, cfg.Cache.RedisURL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `# Server configuration
server:
  port: "9090"
  shutdown_timeout: 5s

logging:
  level: debug
  format: console

backend:
  url: "http://api.internal:8000"
  timeout: 15s

cache:
  categories_ttl: 1m
  redis_url: "redis://localhost:6379/0"

storefront:
  featured_limit: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "http://api.internal:8000", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.CategoriesTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "storefront:", cfg.Cache.RedisPrefix)
	assert.Equal(t, 4, cfg.Storefront.FeaturedLimit)
	assert.Equal(t, 10, cfg.Storefront.RecentOrdersLimit)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
backend:
  url: "http://from-file:8000"
`)
	t.Setenv("PORT", "7070")
	t.Setenv("BOOKSTORE_API_URL", "http://from-env:8000/")
	t.Setenv("BOOKSTORE_API_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CATEGORIES_TTL", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "http://from-env:8000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Cache.CategoriesTTL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		env       map[string]string
		wantField string
	}{
		{
			name:      "invalid duration in env",
			env:       map[string]string{"BOOKSTORE_API_TIMEOUT": "soon"},
			wantField: "BOOKSTORE_API_TIMEOUT",
		},
		{
			name:      "relative backend url",
			env:       map[string]string{"BOOKSTORE_API_URL": "localhost"},
			wantField: "backend.url",
		},
		{
			name:      "bad port",
			env:       map[string]string{"PORT": "http"},
			wantField: "server.port",
		},
		{
			name:      "negative timeout",
			file:      "backend:\n  timeout: -1s\n",
			wantField: "backend.timeout",
		},
		{
			name:      "negative rate interval",
			env:       map[string]string{"BOOKSTORE_API_RATE_INTERVAL": "-5ms"},
			wantField: "backend.rate_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
