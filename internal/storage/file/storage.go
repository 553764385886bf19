package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/storage"
)

// Default file names, matching what existing deployments already have on disk
const (
	CredentialFile  = "users.json"
	LeaderboardFile = "leaderboard.json"
)

// Storage is a flat-file implementation of the storage interface. Credentials
// live in a JSON object keyed by username; the leaderboard is a JSON array
// whose first element is an empty object, a compatibility sentinel the
// external readers skip.
type Storage struct {
	mu  sync.Mutex
	dir string
}

// New creates a file storage rooted at dir
func New(dir string) *Storage {
	return &Storage{dir: dir}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// credentialRecord is the on-disk shape of one user entry
type credentialRecord struct {
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt"`
	Wins         int    `json:"wins"`
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	users[cred.Username] = credentialRecord{
		PasswordHash: cred.PasswordHash,
		Salt:         cred.Salt,
		Wins:         cred.Wins,
	}
	return s.saveUsers(users)
}

func (s *Storage) GetCredential(ctx context.Context, username string) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	rec, ok := users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &model.Credential{
		Username:     username,
		PasswordHash: rec.PasswordHash,
		Salt:         rec.Salt,
		Wins:         rec.Wins,
	}, nil
}

// Leaderboard operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// First element is the empty-object sentinel
	rows := make([]any, 0, len(entries)+1)
	rows = append(rows, struct{}{})
	for _, e := range entries {
		rows = append(rows, e)
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	if err := os.WriteFile(s.path(LeaderboardFile), data, 0o644); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}

func (s *Storage) LoadLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(LeaderboardFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var entries []model.LeaderboardEntry
	for _, row := range rows[1:] {
		var e model.LeaderboardEntry
		if err := json.Unmarshal(row, &e); err != nil || e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Storage) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Storage) loadUsers() (map[string]credentialRecord, error) {
	data, err := os.ReadFile(s.path(CredentialFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]credentialRecord{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	users := map[string]credentialRecord{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return users, nil
}

func (s *Storage) saveUsers(users map[string]credentialRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path(CredentialFile), data, 0o644); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
