package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := setupLogging(cfg)

	log.Info("Starting storefront", map[string]interface{}{
		"version":     version,
		"backend_url": cfg.Backend.URL,
		"log_level":   cfg.Logging.Level,
		"log_format":  cfg.Logging.Format,
	})

	// Set up signal handling
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, closeCache, err := newServer(ctx, cfg, newBackendClient(cfg, log), log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer closeCache()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	log.Info("Initiating graceful shutdown...", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	log.Info("Shutdown complete")
	return nil
}
