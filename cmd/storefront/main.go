// Package main is the entry point for the bookstore storefront.
// It serves the server-rendered pages and forwards every data request
// to the bookstore REST backend.
//
// Environment Variables:
//   BOOKSTORE_API_URL       URL of the bookstore backend (default: http://localhost:8000)
//   BOOKSTORE_API_TIMEOUT   (optional) Go duration for backend requests, 0 disables (default: 0)
//   BOOKSTORE_API_RATE_INTERVAL (optional) Go duration between backend requests, 0 disables (default: 10ms)
//   PORT                    (optional) HTTP port (default: 8080)
//   LOG_LEVEL               (optional) Log level (debug, info, warn, error)
//   LOG_FORMAT              (optional) json or console
//   REDIS_URL               (optional) Share the categories cache through Redis
//   CATEGORIES_TTL          (optional) Go duration for the categories cache (default: 5m)
//   SHUTDOWN_TIMEOUT        (optional) Go duration for graceful shutdown (default: 10s)
//
// Endpoints:
//   GET /healthz           # Health check
//   GET /static/...        # Embedded scripts and styles
//   everything else        # Storefront pages
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// init initializes the logger with default values until the config is read
func init() {
	logger.Setup(logger.Config{
		Level:      "info",
		Format:     logger.FormatJSON,
		TimeFormat: time.RFC3339,
	})
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Get().Error("Error running application", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "storefront",
		Usage:   "Server-rendered storefront for the bookstore API",
		Version: fmt.Sprintf("%s (%s) %s", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Bookstore backend `URL`, overrides BOOKSTORE_API_URL",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP `PORT`, overrides PORT",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log `LEVEL`, overrides LOG_LEVEL",
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the storefront (default)",
				Action: runServe,
			},
			{
				Name:   "check",
				Usage:  "Check that the backend is reachable and exit",
				Action: runCheck,
			},
		},
	}
}
