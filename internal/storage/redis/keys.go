package redis

// Key prefixes for all stored data
const (
	keyPrefix      = "pong:"
	leaderboardKey = keyPrefix + "leaderboard"
)

// credentialKey returns the key for a user's credential record
func credentialKey(username string) string {
	return keyPrefix + "user:" + username
}
