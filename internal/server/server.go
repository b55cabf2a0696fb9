package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/config"
	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/drallgood/bookstore-storefront/internal/view"
	"github.com/gorilla/mux"
)

// Pages registers the storefront routes
type Pages interface {
	Routes(r *mux.Router)
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logger.Logger
}

// New creates the HTTP server for the storefront pages
func New(cfg *config.Config, pages Pages, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Get()
	}
	s := &Server{
		server: &http.Server{
			Addr:         net.JoinHostPort("", cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		logger: log.WithComponent("server"),
	}

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/healthz", s.handleHealthCheck).Methods(http.MethodGet)

	// Embedded assets
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))),
	).Methods(http.MethodGet, http.MethodHead)

	pages.Routes(router)

	// Middleware chain: request id -> access log -> router
	var handler http.Handler = router
	handler = logger.HTTPMiddleware(handler)
	handler = logger.WithRequestID(handler)
	s.server.Handler = handler

	return s
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler returns the full middleware chain
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck handles health check requests
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}
