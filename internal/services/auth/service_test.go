package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Sixteen1-6/Pong/internal/dependencies/mocks"
	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/storage/memory"
	"github.com/Sixteen1-6/Pong/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	rand    *mocks.MockSource
	tokens  *TokenStore
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rand = mocks.NewMockSource(7)
	s.tokens = NewTokenStore(s.clock, s.rand, 0)
	s.service = New(s.storage, s.tokens, s.rand, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	err := s.service.Register(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	cred, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", cred.Username)
	s.NotEmpty(cred.Salt)
	s.NotEqual("password123", cred.PasswordHash)
	s.Equal(0, cred.Wins)
}

func (s *ServiceSuite) TestRegisterStoresSaltedHash() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	cred, err := s.storage.GetCredential(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(HashPassword("password123", cred.Salt), cred.PasswordHash)
}

func (s *ServiceSuite) TestRegisterFailsWithMissingCredentials() {
	s.ErrorIs(s.service.Register(s.ctx, "", "password123"), model.ErrMissingCredentials)
	s.ErrorIs(s.service.Register(s.ctx, "alice", ""), model.ErrMissingCredentials)
}

func (s *ServiceSuite) TestRegisterFailsWithNonAlphanumericUsername() {
	s.ErrorIs(s.service.Register(s.ctx, "al ice", "password123"), model.ErrUsernameNotAlnum)
	s.ErrorIs(s.service.Register(s.ctx, "alice!", "password123"), model.ErrUsernameNotAlnum)
	s.ErrorIs(s.service.Register(s.ctx, "al-ice", "password123"), model.ErrUsernameNotAlnum)
}

func (s *ServiceSuite) TestRegisterFailsWithShortPassword() {
	s.ErrorIs(s.service.Register(s.ctx, "alice", "abc"), model.ErrPasswordTooShort)
}

func (s *ServiceSuite) TestRegisterAcceptsMinimumLengthPassword() {
	s.NoError(s.service.Register(s.ctx, "alice", "abcd"))
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	err := s.service.Register(s.ctx, "alice", "different")
	s.ErrorIs(err, model.ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	token, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.NotEmpty(token)

	username, err := s.tokens.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginsMintDistinctTokens() {
	_ = s.service.Register(s.ctx, "alice", "password123")

	first, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	second, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEqual(first, second)

	// Both remain valid until they expire
	_, err = s.tokens.Verify(first)
	s.NoError(err)
	_, err = s.tokens.Verify(second)
	s.NoError(err)
}

func TestHashPasswordIsDeterministic(t *testing.T) {
	first := HashPassword("password123", "aabbccdd")
	second := HashPassword("password123", "aabbccdd")
	if first != second {
		t.Fatalf("hashes differ: %s vs %s", first, second)
	}
	if HashPassword("password123", "other") == first {
		t.Fatal("different salts should produce different hashes")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
}
