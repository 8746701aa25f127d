// Package api provides the HTTP REST API server.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/good-yellow-bee/chatter/internal/api/health"
	"github.com/good-yellow-bee/chatter/internal/chat"
	"github.com/good-yellow-bee/chatter/internal/docstore"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address        string
	Environment    string
	AllowedOrigins []string // CORS origins; "*" allows all
	Verbose        bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// Server is the HTTP API server.
type Server struct {
	config        *Config
	chat          *chat.Service
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new API server on top of the given document store.
func New(cfg *Config, store docstore.Store) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	cfg.SetDefaults()

	var checker health.Checker
	if c, ok := store.(health.Checker); ok {
		checker = c
	}

	s := &Server{
		config:        cfg,
		chat:          chat.NewService(store),
		healthHandler: health.NewHandler(cfg.Environment, checker),
	}

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP API listening on %s", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down HTTP API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}
