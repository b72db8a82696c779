package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

// ServerConfig holds configuration for the HTTP game server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the scores database. Empty disables storage.
	DBPath string

	// ConfigPath is an optional rules YAML file.
	ConfigPath string

	// Difficulty is a preset name: easy, normal, hard or fixed.
	Difficulty string

	// TickRate is how often each session driver advances the clock.
	TickRate int
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		DBPath:   "~/.tetris/scores.db",
		TickRate: 60,
	}
}

// Server serves the game over HTTP.
type Server struct {
	config   ServerConfig
	server   *http.Server
	sessions *Manager
	store    *storage.Store
	logger   *log.Logger
}

// NewServer creates an HTTP server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-web",
	})

	rules, err := config.LoadTetris(cfg.ConfigPath)
	if err != nil {
		logger.Warn("could not load rules, using defaults", "path", cfg.ConfigPath, "error", err)
	}
	config.ApplyTetrisPreset(&rules, config.DifficultyPreset(cfg.Difficulty))

	var store *storage.Store
	if cfg.DBPath != "" {
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
			// Continue without storage
			store = nil
		}
	}

	sessions := NewManager(ManagerConfig{
		Rules:    rules,
		TickRate: cfg.TickRate,
		Store:    store,
		Logger:   logger,
	})
	handler := NewHandler(sessions, store, logger)

	return &Server{
		config: cfg,
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		sessions: sessions,
		store:    store,
		logger:   logger,
	}, nil
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	s.logger.Info("starting HTTP server", "address", ln.Addr().String())

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops the session drivers, the HTTP server and the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.sessions.Close()
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
