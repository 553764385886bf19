package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Sixteen1-6/Pong/internal/dependencies/clock"
	"github.com/Sixteen1-6/Pong/internal/dependencies/random"
	"github.com/Sixteen1-6/Pong/internal/model"
)

// DefaultTokenTTL is the absolute lifetime of a session token. Verification
// never extends it.
const DefaultTokenTTL = 10 * time.Minute

type tokenRecord struct {
	username  string
	expiresAt time.Time
}

// TokenStore issues and verifies session tokens. Tokens are minted by auth
// workers and verified by game workers, so all access is mutex-guarded.
type TokenStore struct {
	clock clock.Clock
	rand  random.Source
	ttl   time.Duration

	mu     sync.Mutex
	tokens map[string]tokenRecord
}

// NewTokenStore creates a TokenStore with the given absolute TTL.
// A zero ttl uses DefaultTokenTTL.
func NewTokenStore(clk clock.Clock, rand random.Source, ttl time.Duration) *TokenStore {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStore{
		clock:  clk,
		rand:   rand,
		ttl:    ttl,
		tokens: make(map[string]tokenRecord),
	}
}

// Mint issues a new token bound to username
func (ts *TokenStore) Mint(username string) string {
	token := random.Token(ts.rand)

	ts.mu.Lock()
	ts.tokens[token] = tokenRecord{
		username:  username,
		expiresAt: ts.clock.Now().Add(ts.ttl),
	}
	ts.mu.Unlock()

	return token
}

// Verify returns the username bound to token. An unknown token is rejected;
// an expired token is deleted and rejected, so a second verification attempt
// fails the same way.
func (ts *TokenStore) Verify(token string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	rec, ok := ts.tokens[token]
	if !ok {
		return "", model.ErrInvalidToken
	}
	if ts.clock.Now().After(rec.expiresAt) {
		delete(ts.tokens, token)
		return "", model.ErrInvalidToken
	}
	return rec.username, nil
}

// Revoke deletes a token
func (ts *TokenStore) Revoke(token string) {
	ts.mu.Lock()
	delete(ts.tokens, token)
	ts.mu.Unlock()
}

// Sweep removes all expired tokens and returns how many were removed
func (ts *TokenStore) Sweep() int {
	now := ts.clock.Now()

	ts.mu.Lock()
	defer ts.mu.Unlock()

	removed := 0
	for token, rec := range ts.tokens {
		if now.After(rec.expiresAt) {
			delete(ts.tokens, token)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps expired tokens at the given interval until ctx is done
func (ts *TokenStore) RunSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ts.Sweep(); n > 0 {
				logger.Debug("swept expired tokens", slog.Int("count", n))
			}
		}
	}
}
