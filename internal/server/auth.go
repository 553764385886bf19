package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/services/auth"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

// Response messages, verbatim what existing clients display
const (
	msgRegistered  = "Registration successful"
	msgLoggedIn    = "Login successful"
	msgAuthError   = "Authentication error"
	msgBadAction   = "Invalid action"
	msgMissing     = "Username and password required"
	msgNotAlnum    = "Username must be alphanumeric"
	msgShortPass   = "Password must be at least 4 characters"
	msgUserExists  = "Username already exists"
	msgBadPassword = "Invalid username or password"
)

// AuthConfig holds configuration for the auth listener
type AuthConfig struct {
	Addr        string
	ReadTimeout time.Duration
}

// DefaultAuthConfig returns sensible defaults for the auth server
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Addr:        ":8081",
		ReadTimeout: 15 * time.Second,
	}
}

// AuthServer is the separate listener for login and register requests. Each
// connection carries exactly one request and one structured response.
type AuthServer struct {
	cfg    AuthConfig
	codec  *wire.Codec
	auth   *auth.Service
	logger *slog.Logger
}

// NewAuthServer creates an AuthServer
func NewAuthServer(cfg AuthConfig, codec *wire.Codec, authService *auth.Service, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		cfg:    cfg,
		codec:  codec,
		auth:   authService,
		logger: logger,
	}
}

// ListenAndServe listens on the configured address and serves until ctx is
// done
func (s *AuthServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen auth: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done
func (s *AuthServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("auth server listening", slog.String("addr", ln.Addr().String()))

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

func (s *AuthServer) handleConn(ctx context.Context, nc net.Conn) {
	logger := s.logger.With(
		slog.String("conn_id", uuid.NewString()),
		slog.String("remote", nc.RemoteAddr().String()),
	)

	conn := wire.NewConn(nc, s.codec, s.cfg.ReadTimeout)
	defer conn.Close()

	var req wire.AuthRequest
	if err := conn.ReadJSON(&req); err != nil {
		logger.Warn("auth request failed", slog.String("kind", wire.Classify(err).String()))
		_ = conn.WriteJSON(wire.AuthResponse{Success: false, Message: msgAuthError})
		return
	}

	resp := s.handleRequest(ctx, req, logger)
	if err := conn.WriteJSON(resp); err != nil {
		logger.Warn("auth response send failed", slog.String("kind", wire.Classify(err).String()))
	}
}

func (s *AuthServer) handleRequest(ctx context.Context, req wire.AuthRequest, logger *slog.Logger) wire.AuthResponse {
	switch req.Action {
	case wire.ActionRegister:
		if err := s.auth.Register(ctx, req.Username, req.Password); err != nil {
			logger.Info("registration rejected",
				slog.String("username", req.Username),
				slog.String("reason", err.Error()),
			)
			return wire.AuthResponse{Success: false, Message: messageFor(err)}
		}
		return wire.AuthResponse{Success: true, Message: msgRegistered}

	case wire.ActionLogin:
		token, err := s.auth.Login(ctx, req.Username, req.Password)
		if err != nil {
			logger.Info("login rejected", slog.String("username", req.Username))
			return wire.AuthResponse{Success: false, Message: messageFor(err)}
		}
		return wire.AuthResponse{
			Success:  true,
			Message:  msgLoggedIn,
			Token:    token,
			Username: req.Username,
		}

	default:
		return wire.AuthResponse{Success: false, Message: msgBadAction}
	}
}

// messageFor maps service errors to the exact client-facing messages
func messageFor(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		return msgMissing
	case errors.Is(err, model.ErrUsernameNotAlnum):
		return msgNotAlnum
	case errors.Is(err, model.ErrPasswordTooShort):
		return msgShortPass
	case errors.Is(err, model.ErrUsernameExists):
		return msgUserExists
	case errors.Is(err, model.ErrInvalidCredentials):
		return msgBadPassword
	default:
		return msgAuthError
	}
}
