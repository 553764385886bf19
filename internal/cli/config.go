package cli

import "os"

// Config holds CLI configuration, from flags with env fallbacks
type Config struct {
	// AuthAddr is the auth server's TCP address (env: PONG_AUTH_ADDR)
	AuthAddr string
	// LeaderboardURL is the leaderboard HTTP base URL (env: PONG_LEADERBOARD_URL)
	LeaderboardURL string
	// Verbose enables request/response dumps
	Verbose bool
}

// DefaultConfig returns CLI defaults, honoring environment overrides
func DefaultConfig() *Config {
	cfg := &Config{
		AuthAddr:       "localhost:8081",
		LeaderboardURL: "http://localhost:80",
	}
	if v := os.Getenv("PONG_AUTH_ADDR"); v != "" {
		cfg.AuthAddr = v
	}
	if v := os.Getenv("PONG_LEADERBOARD_URL"); v != "" {
		cfg.LeaderboardURL = v
	}
	return cfg
}
