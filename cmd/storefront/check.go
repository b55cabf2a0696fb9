package main

import (
	"context"
	"fmt"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/urfave/cli/v2"
)

// checkBackend reads the categories and the session endpoint.
// A 401 from /me still proves the backend answers.
func checkBackend(ctx context.Context, api bookstore.API, log *logger.Logger) error {
	categories, err := api.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	log.Info("Backend categories reachable", map[string]interface{}{"count": len(categories)})

	if _, err := api.CurrentUser(ctx); err != nil && !bookstore.IsUnauthorized(err) {
		return fmt.Errorf("failed to check session endpoint: %w", err)
	}
	log.Info("Backend session endpoint reachable")
	return nil
}

func runCheck(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := setupLogging(cfg)

	if err := checkBackend(c.Context, newBackendClient(cfg, log), log); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "backend %s OK\n", cfg.Backend.URL)
	return nil
}
