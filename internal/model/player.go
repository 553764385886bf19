package model

// Credential is a registered account: a salted password hash and the
// player's lifetime win count, keyed by username.
type Credential struct {
	Username     string `json:"-"`
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt"`
	Wins         int    `json:"wins"`
}

// LeaderboardEntry is one ranked row of the persisted leaderboard
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
