package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/cache"
	"github.com/drallgood/bookstore-storefront/internal/config"
	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/server"
	"github.com/drallgood/bookstore-storefront/internal/storefront"
	"github.com/drallgood/bookstore-storefront/internal/util"
	"github.com/drallgood/bookstore-storefront/internal/view"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the config file and environment, then applies the
// command line overrides
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, c)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, c *cli.Context) {
	if v := c.String("api-url"); v != "" {
		cfg.Backend.URL = strings.TrimSuffix(v, "/")
	}
	if v := c.String("port"); v != "" {
		cfg.Server.Port = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Logging.Level = v
	}
}

func setupLogging(cfg *config.Config) *logger.Logger {
	logger.Setup(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     logger.ParseLogFormat(cfg.Logging.Format),
		Output:     os.Stdout,
		TimeFormat: time.RFC3339,
	})
	return logger.Get()
}

func newBackendClient(cfg *config.Config, log *logger.Logger) *bookstore.Client {
	return bookstore.NewClient(cfg.Backend.URL,
		bookstore.WithTimeout(cfg.Backend.Timeout),
		bookstore.WithRateLimiter(util.NewRateLimiter(cfg.Backend.RateInterval, cfg.Backend.RateBurst, log)),
		bookstore.WithLogger(log),
	)
}

// newCategoriesCache uses Redis when configured and reachable, the
// in-process cache otherwise. The returned close func is never nil.
func newCategoriesCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Cache[string, []models.Category], func()) {
	noop := func() {}
	memory := func() cache.Cache[string, []models.Category] {
		return cache.WithTTL(cache.NewMemoryCache[string, []models.Category](log), cfg.Cache.CategoriesTTL)
	}

	if cfg.Cache.RedisURL == "" {
		return memory(), noop
	}

	rdb, err := cache.NewRedisClient(cfg.Cache.RedisURL)
	if err != nil {
		log.Warn("Falling back to in-memory categories cache", map[string]interface{}{"error": err.Error()})
		return memory(), noop
	}
	shared, err := cache.NewRedisCache[[]models.Category](ctx, rdb, cfg.Cache.RedisPrefix, log)
	if err != nil {
		log.Warn("Falling back to in-memory categories cache", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory(), noop
	}

	log.Info("Using Redis categories cache", map[string]interface{}{"prefix": cfg.Cache.RedisPrefix})
	return cache.WithTTL(shared, cfg.Cache.CategoriesTTL), closeRedis(rdb, log)
}

func closeRedis(rdb *redis.Client, log *logger.Logger) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			log.Warn("Failed to close redis client", map[string]interface{}{"error": err.Error()})
		}
	}
}

func settingsFrom(cfg *config.Config) storefront.Settings {
	return storefront.Settings{
		FeaturedLimit:     cfg.Storefront.FeaturedLimit,
		RecentOrdersLimit: cfg.Storefront.RecentOrdersLimit,
		ToastLifetime:     cfg.Storefront.ToastLifetime,
		CategoriesTTL:     cfg.Cache.CategoriesTTL,
	}
}

// newServer wires the backend client, the pages and the HTTP server
func newServer(ctx context.Context, cfg *config.Config, api bookstore.API, log *logger.Logger) (*server.Server, func(), error) {
	renderer, err := view.NewRenderer(cfg.Storefront.PlaceholderCover)
	if err != nil {
		return nil, nil, err
	}

	categories, closeCache := newCategoriesCache(ctx, cfg, log)
	pages := storefront.New(api, renderer,
		storefront.WithSettings(settingsFrom(cfg)),
		storefront.WithCategoriesCache(categories),
		storefront.WithLogger(log),
	)
	return server.New(cfg, pages, log), closeCache, nil
}
