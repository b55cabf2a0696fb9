package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPlaceholderCover is the cover used when a book has none.
// The page code substitutes the size for each component.
const DefaultPlaceholderCover = "https://via.placeholder.com/%s?text=No+Cover"

// Config holds all configuration for the storefront
type Config struct {
	// Server configuration
	Server struct {
		Port            string        `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	// Logging configuration
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	// Bookstore REST backend
	Backend struct {
		URL string `yaml:"url"`
		// Timeout of zero means requests never time out on their own
		Timeout time.Duration `yaml:"timeout"`
		// RateInterval paces outgoing requests, zero disables pacing
		RateInterval time.Duration `yaml:"rate_interval"`
		RateBurst    int           `yaml:"rate_burst"`
	} `yaml:"backend"`

	// Categories cache
	Cache struct {
		CategoriesTTL time.Duration `yaml:"categories_ttl"`
		RedisURL      string        `yaml:"redis_url"`
		RedisPrefix   string        `yaml:"redis_prefix"`
	} `yaml:"cache"`

	// Page settings
	Storefront struct {
		FeaturedLimit     int           `yaml:"featured_limit"`
		RecentOrdersLimit int           `yaml:"recent_orders_limit"`
		ToastLifetime     time.Duration `yaml:"toast_lifetime"`
		PlaceholderCover  string        `yaml:"placeholder_cover"`
	} `yaml:"storefront"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.IdleTimeout = 120 * time.Second
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Backend.URL = "http://localhost:8000"
	cfg.Backend.RateInterval = 10 * time.Millisecond
	cfg.Backend.RateBurst = 20
	cfg.Cache.CategoriesTTL = 5 * time.Minute
	cfg.Cache.RedisPrefix = "storefront:"
	cfg.Storefront.FeaturedLimit = 8
	cfg.Storefront.RecentOrdersLimit = 10
	cfg.Storefront.ToastLifetime = 3 * time.Second
	cfg.Storefront.PlaceholderCover = DefaultPlaceholderCover
	return cfg
}

// Load loads configuration from a file (if specified) and environment variables.
// Configuration priority: 1) Environment variables, 2) Config file, 3) Defaults
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		fileCfg, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		mergeConfigs(cfg, fileCfg)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML file without applying defaults
func LoadFromFile(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		abspath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = abspath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return &ConfigError{Field: "backend.url", Msg: "is required"}
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "backend.url", Msg: "must be an absolute URL"}
	}
	if c.Backend.Timeout < 0 {
		return &ConfigError{Field: "backend.timeout", Msg: "must not be negative"}
	}
	if c.Backend.RateInterval < 0 {
		return &ConfigError{Field: "backend.rate_interval", Msg: "must not be negative"}
	}
	if c.Backend.RateBurst < 0 {
		return &ConfigError{Field: "backend.rate_burst", Msg: "must not be negative"}
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return &ConfigError{Field: "server.port", Msg: "must be a number between 1 and 65535"}
	}
	if c.Storefront.FeaturedLimit < 1 {
		return &ConfigError{Field: "storefront.featured_limit", Msg: "must be at least 1"}
	}
	if c.Storefront.RecentOrdersLimit < 1 {
		return &ConfigError{Field: "storefront.recent_orders_limit", Msg: "must be at least 1"}
	}
	if c.Storefront.ToastLifetime <= 0 {
		return &ConfigError{Field: "storefront.toast_lifetime", Msg: "must be positive"}
	}
	if c.Cache.RedisURL != "" {
		if _, err := url.Parse(c.Cache.RedisURL); err != nil {
			return &ConfigError{Field: "cache.redis_url", Msg: "is not a valid URL"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Msg
}

// loadFromEnv applies environment overrides
func loadFromEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if apiURL := os.Getenv("BOOKSTORE_API_URL"); apiURL != "" {
		cfg.Backend.URL = strings.TrimSuffix(apiURL, "/")
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.Cache.RedisURL = redisURL
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"BOOKSTORE_API_TIMEOUT", &cfg.Backend.Timeout},
		{"BOOKSTORE_API_RATE_INTERVAL", &cfg.Backend.RateInterval},
		{"CATEGORIES_TTL", &cfg.Cache.CategoriesTTL},
		{"SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		value, ok := os.LookupEnv(d.key)
		if !ok || value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return &ConfigError{Field: d.key, Msg: fmt.Sprintf("is not a valid duration: %v", err)}
		}
		*d.dst = parsed
	}
	return nil
}

// mergeConfigs copies the non-zero fields of each section of src into dst
func mergeConfigs(dst, src *Config) {
	dstVal := reflect.ValueOf(dst).Elem()
	srcVal := reflect.ValueOf(src).Elem()

	for i := 0; i < dstVal.NumField(); i++ {
		dstSection := dstVal.Field(i)
		srcSection := srcVal.Field(i)
		if dstSection.Kind() != reflect.Struct {
			continue
		}
		for j := 0; j < dstSection.NumField(); j++ {
			dstField := dstSection.Field(j)
			srcField := srcSection.Field(j)
			if !dstField.CanSet() || srcField.IsZero() {
				continue
			}
			dstField.Set(srcField)
		}
	}
}
