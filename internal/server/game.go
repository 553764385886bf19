package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/Sixteen1-6/Pong/internal/services/auth"
	"github.com/Sixteen1-6/Pong/internal/services/game"
	"github.com/Sixteen1-6/Pong/internal/services/leaderboard"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

// GameConfig holds configuration for the game listener
type GameConfig struct {
	Addr string
	// ReadTimeout bounds each blocking read so a vanished peer is detected
	// without waiting for an OS-level reset
	ReadTimeout time.Duration
	// Throttle is the delay before each steady-state read
	Throttle time.Duration
	// StartDelay is how long a worker waits after setup before the loop,
	// giving both clients time to finish their handshakes
	StartDelay time.Duration
}

// DefaultGameConfig returns sensible defaults for the game server
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Addr:        ":8080",
		ReadTimeout: 30 * time.Second,
		Throttle:    10 * time.Millisecond,
		StartDelay:  time.Second,
	}
}

// GameServer owns the game listener: it verifies tokens on new connections,
// hands them to the matchmaker, and runs one worker per paired connection.
type GameServer struct {
	cfg         GameConfig
	codec       *wire.Codec
	tokens      *auth.TokenStore
	matchmaker  *game.Matchmaker
	registry    *game.Registry
	leaderboard *leaderboard.Service
	logger      *slog.Logger
}

// NewGameServer creates a GameServer
func NewGameServer(
	cfg GameConfig,
	codec *wire.Codec,
	tokens *auth.TokenStore,
	matchmaker *game.Matchmaker,
	registry *game.Registry,
	leaderboard *leaderboard.Service,
	logger *slog.Logger,
) *GameServer {
	return &GameServer{
		cfg:         cfg,
		codec:       codec,
		tokens:      tokens,
		matchmaker:  matchmaker,
		registry:    registry,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// ListenAndServe listens on the configured address and serves until ctx is
// done
func (s *GameServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen game: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. Exposed separately so
// tests can pass an ephemeral-port listener.
func (s *GameServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("game server listening", slog.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handleConn(ctx, nc)
	}
}

// handleConn performs the token handshake and admits the connection to
// matchmaking. Workers only start once a pair is complete.
func (s *GameServer) handleConn(ctx context.Context, nc net.Conn) {
	logger := s.logger.With(
		slog.String("conn_id", uuid.NewString()),
		slog.String("remote", nc.RemoteAddr().String()),
	)

	conn := wire.NewConn(nc, s.codec, s.cfg.ReadTimeout)

	token, err := conn.ReadText()
	if err != nil {
		logger.Warn("handshake read failed", slog.String("kind", wire.Classify(err).String()))
		_ = conn.Close()
		return
	}

	username, err := s.tokens.Verify(token)
	if err != nil {
		logger.Warn("invalid token")
		_ = conn.WriteText(wire.InvalidToken)
		_ = conn.Close()
		return
	}

	if err := conn.WriteText(wire.TokenOK); err != nil {
		logger.Warn("handshake ack failed")
		_ = conn.Close()
		return
	}

	logger.Info("player connected", slog.String("username", username))
	s.leaderboard.Touch(username)

	ticket := s.matchmaker.Admit(username, &playerConn{conn: conn, logger: logger})
	if !ticket.Ready() {
		logger.Info("waiting for opponent", slog.Int64("session_id", ticket.Session.ID))
		return
	}

	logger.Info("match starting",
		slog.Int64("session_id", ticket.Session.ID),
		slog.String("left", ticket.Peer.Username),
		slog.String("right", ticket.Username),
	)

	go s.startWorker(ctx, ticket.Peer)
	go s.startWorker(ctx, ticket)
}

// playerConn is what a ticket carries between admission and worker start
type playerConn struct {
	conn   *wire.Conn
	logger *slog.Logger
}

func (s *GameServer) startWorker(ctx context.Context, t *game.Ticket) {
	pc := t.Attachment.(*playerConn)
	w := &worker{
		conn:        pc.conn,
		session:     t.Session,
		side:        t.Side,
		username:    t.Username,
		registry:    s.registry,
		leaderboard: s.leaderboard,
		throttle:    s.cfg.Throttle,
		startDelay:  s.cfg.StartDelay,
		logger: pc.logger.With(
			slog.Int64("session_id", t.Session.ID),
			slog.String("side", string(t.Side)),
		),
	}
	w.run(ctx)
}
