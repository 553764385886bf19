package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
)

// HTTPConfig holds configuration for the leaderboard HTTP server
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultHTTPConfig returns sensible defaults for the leaderboard server
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Addr:            ":80",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// LeaderboardServer serves the persisted leaderboard file over plain HTTP.
// It pushes nothing: readers re-read the file on every request.
type LeaderboardServer struct {
	server *http.Server
	logger *slog.Logger
	config HTTPConfig
}

// NewLeaderboardServer creates the HTTP server serving files from dataDir
func NewLeaderboardServer(cfg HTTPConfig, dataDir string, logger *slog.Logger) *LeaderboardServer {
	r := mux.NewRouter()
	r.HandleFunc("/leaderboard.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, req, filepath.Join(dataDir, "leaderboard.json"))
	}).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(dataDir)))

	return &LeaderboardServer{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger,
		config: cfg,
	}
}

// Start begins listening for HTTP requests
func (s *LeaderboardServer) Start() error {
	s.logger.Info("leaderboard HTTP server listening", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("leaderboard server error: %w", err)
	}
	return nil
}

// Serve begins serving on an existing listener. Exposed separately so tests
// can pass an ephemeral-port listener.
func (s *LeaderboardServer) Serve(ln net.Listener) error {
	s.logger.Info("leaderboard HTTP server listening", slog.String("addr", ln.Addr().String()))

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("leaderboard server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *LeaderboardServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("leaderboard server shutdown: %w", err)
	}
	return nil
}

// Addr returns the server's listen address
func (s *LeaderboardServer) Addr() string {
	return s.server.Addr
}
