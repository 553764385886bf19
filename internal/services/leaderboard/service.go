package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/storage"
)

// Service tracks win counts and persists the ranked list. The in-memory map
// starts empty at process start (it is not seeded from the persisted file),
// and one lock serializes all win writes process-wide, including the
// persistence rewrite.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu   sync.Mutex
	wins map[string]int
}

// New creates a leaderboard Service with an empty win map
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		wins:    make(map[string]int),
	}
}

// Reset clears the win map and truncates the persisted list to its
// sentinel-only form. Called once at process start.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wins = make(map[string]int)
	return s.storage.SaveLeaderboard(ctx, nil)
}

// Touch ensures a player has an entry, so they appear in the rankings with
// zero wins once the list is next persisted
func (s *Service) Touch(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wins[username]; !ok {
		s.wins[username] = 0
	}
}

// RecordWin increments the winner's counter and rewrites the full ranked
// list
func (s *Service) RecordWin(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wins[username]++
	entries := s.rankedLocked()

	if err := s.storage.SaveLeaderboard(ctx, entries); err != nil {
		return err
	}

	s.logger.Info("win recorded",
		slog.String("username", username),
		slog.Int("wins", s.wins[username]),
	)
	return nil
}

// Rankings returns the current in-memory standings, ranked descending
func (s *Service) Rankings() []model.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankedLocked()
}

func (s *Service) rankedLocked() []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(s.wins))
	for name, wins := range s.wins {
		entries = append(entries, model.LeaderboardEntry{Name: name, Score: wins})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
