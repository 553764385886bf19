package memory

import (
	"context"
	"sync"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	credentials map[string]*model.Credential
	leaderboard []model.LeaderboardEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		credentials: make(map[string]*model.Credential),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cred
	s.credentials[cred.Username] = &copied
	return nil
}

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *cred
	return &copied, nil
}

// Leaderboard operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboard = make([]model.LeaderboardEntry, len(entries))
	copy(s.leaderboard, entries)
	return nil
}

func (s *Storage) LoadLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]model.LeaderboardEntry, len(s.leaderboard))
	copy(entries, s.leaderboard)
	return entries, nil
}
