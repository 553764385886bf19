package storage

import (
	"context"

	"github.com/Sixteen1-6/Pong/internal/model"
)

// Storage defines the interface for data persistence: the credential records
// behind the auth gateway and the ranked win leaderboard.
type Storage interface {
	// Credential operations
	SaveCredential(ctx context.Context, cred *model.Credential) error
	GetCredential(ctx context.Context, username string) (*model.Credential, error)

	// Leaderboard operations. SaveLeaderboard replaces the whole ranked
	// list; entries are expected in descending score order.
	SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error
	LoadLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}
