package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Sixteen1-6/Pong/internal/dependencies/clock"
	"github.com/Sixteen1-6/Pong/internal/dependencies/random"
	"github.com/Sixteen1-6/Pong/internal/services/auth"
	"github.com/Sixteen1-6/Pong/internal/storage/memory"
	"github.com/Sixteen1-6/Pong/internal/testutil"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

type AuthServerSuite struct {
	suite.Suite
	codec  *wire.Codec
	tokens *auth.TokenStore
	addr   string
	cancel context.CancelFunc
}

func TestAuthServerSuite(t *testing.T) {
	suite.Run(t, new(AuthServerSuite))
}

func (s *AuthServerSuite) SetupTest() {
	codec, err := wire.NewCodec(wire.DefaultPassphrase)
	s.Require().NoError(err)
	s.codec = codec

	rnd := random.New()
	s.tokens = auth.NewTokenStore(clock.New(), rnd, 0)
	service := auth.New(memory.New(), s.tokens, rnd, testutil.NopLogger())

	srv := NewAuthServer(
		AuthConfig{Addr: "127.0.0.1:0", ReadTimeout: 2 * time.Second},
		codec, service, testutil.NopLogger(),
	)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.addr = ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		_ = srv.Serve(ctx, ln)
	}()
}

func (s *AuthServerSuite) TearDownTest() {
	s.cancel()
}

// exchange performs one request/response round trip on a fresh connection
func (s *AuthServerSuite) exchange(req wire.AuthRequest) wire.AuthResponse {
	nc, err := net.Dial("tcp", s.addr)
	s.Require().NoError(err)
	conn := wire.NewConn(nc, s.codec, 2*time.Second)
	defer conn.Close()

	s.Require().NoError(conn.WriteJSON(req))

	var resp wire.AuthResponse
	s.Require().NoError(conn.ReadJSON(&resp))
	return resp
}

func (s *AuthServerSuite) register(username, password string) wire.AuthResponse {
	return s.exchange(wire.AuthRequest{Action: wire.ActionRegister, Username: username, Password: password})
}

func (s *AuthServerSuite) login(username, password string) wire.AuthResponse {
	return s.exchange(wire.AuthRequest{Action: wire.ActionLogin, Username: username, Password: password})
}

// Register tests

func (s *AuthServerSuite) TestRegisterSucceeds() {
	resp := s.register("alice", "password123")
	s.True(resp.Success)
	s.Equal("Registration successful", resp.Message)
	s.Empty(resp.Token)
}

func (s *AuthServerSuite) TestRegisterDuplicate() {
	s.register("alice", "password123")

	resp := s.register("alice", "different")
	s.False(resp.Success)
	s.Equal("Username already exists", resp.Message)
}

func (s *AuthServerSuite) TestRegisterMissingCredentials() {
	resp := s.register("", "password123")
	s.False(resp.Success)
	s.Equal("Username and password required", resp.Message)
}

func (s *AuthServerSuite) TestRegisterNonAlphanumericUsername() {
	resp := s.register("al ice", "password123")
	s.False(resp.Success)
	s.Equal("Username must be alphanumeric", resp.Message)
}

func (s *AuthServerSuite) TestRegisterShortPassword() {
	resp := s.register("alice", "abc")
	s.False(resp.Success)
	s.Equal("Password must be at least 4 characters", resp.Message)
}

// Login tests

func (s *AuthServerSuite) TestLoginSucceeds() {
	s.register("alice", "password123")

	resp := s.login("alice", "password123")
	s.True(resp.Success)
	s.Equal("Login successful", resp.Message)
	s.Equal("alice", resp.Username)
	s.Require().NotEmpty(resp.Token)

	username, err := s.tokens.Verify(resp.Token)
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *AuthServerSuite) TestLoginWrongPassword() {
	s.register("alice", "password123")

	resp := s.login("alice", "wrong")
	s.False(resp.Success)
	s.Equal("Invalid username or password", resp.Message)
	s.Empty(resp.Token)
}

func (s *AuthServerSuite) TestLoginUnknownUserSameMessage() {
	resp := s.login("nobody", "password123")
	s.False(resp.Success)
	s.Equal("Invalid username or password", resp.Message)
}

// Protocol edge cases

func (s *AuthServerSuite) TestUnknownAction() {
	resp := s.exchange(wire.AuthRequest{Action: "delete", Username: "alice", Password: "password123"})
	s.False(resp.Success)
	s.Equal("Invalid action", resp.Message)
}

func (s *AuthServerSuite) TestUnencryptedRequestGetsErrorResponse() {
	nc, err := net.Dial("tcp", s.addr)
	s.Require().NoError(err)
	defer nc.Close()

	_, err = nc.Write([]byte(`{"action": "login"}`))
	s.Require().NoError(err)

	conn := wire.NewConn(nc, s.codec, 2*time.Second)
	var resp wire.AuthResponse
	s.Require().NoError(conn.ReadJSON(&resp))
	s.False(resp.Success)
	s.Equal("Authentication error", resp.Message)
}
