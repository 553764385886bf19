package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/Sixteen1-6/Pong/internal/dependencies/random"
	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/storage"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 4

// Service handles registration and login against the credential store,
// minting session tokens on successful login.
type Service struct {
	storage storage.Storage
	tokens  *TokenStore
	rand    random.Source
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, tokens *TokenStore, rand random.Source, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		rand:    rand,
		logger:  logger,
	}
}

// Tokens returns the service's token store
func (s *Service) Tokens() *TokenStore {
	return s.tokens
}

// Register creates a new credential record. Usernames must be alphanumeric
// and unique; passwords must be at least MinPasswordLength characters.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return model.ErrMissingCredentials
	}
	if !isAlphanumeric(username) {
		return model.ErrUsernameNotAlnum
	}
	if len(password) < MinPasswordLength {
		return model.ErrPasswordTooShort
	}

	_, err := s.storage.GetCredential(ctx, username)
	if err == nil {
		return model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	salt := random.Salt(s.rand)
	cred := &model.Credential{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		Wins:         0,
	}
	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		return err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Login verifies credentials and mints a session token. Failures are
// reported uniformly so a caller cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	cred, err := s.storage.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}

	if HashPassword(password, cred.Salt) != cred.PasswordHash {
		return "", model.ErrInvalidCredentials
	}

	token := s.tokens.Mint(username)
	s.logger.Info("user logged in", slog.String("username", username))
	return token, nil
}

// HashPassword computes the salted hash stored in the credential file:
// lowercase hex of sha256(password + salt). The format is fixed by the
// records existing deployments already hold.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}
