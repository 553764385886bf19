package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

// Client talks to the auth port and the leaderboard HTTP server using the
// same codec the game clients carry
type Client struct {
	cfg   *Config
	codec *wire.Codec
	http  *http.Client
}

// NewClient creates a Client for the configured endpoints
func NewClient(cfg *Config) (*Client, error) {
	codec, err := wire.NewCodec(wire.DefaultPassphrase)
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:   cfg,
		codec: codec,
		http:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Auth sends one request on a fresh connection and reads the structured
// response; the auth port serves exactly one exchange per connection.
func (c *Client) Auth(req wire.AuthRequest) (wire.AuthResponse, error) {
	nc, err := net.DialTimeout("tcp", c.cfg.AuthAddr, 10*time.Second)
	if err != nil {
		return wire.AuthResponse{}, fmt.Errorf("dial auth server: %w", err)
	}
	conn := wire.NewConn(nc, c.codec, 10*time.Second)
	defer conn.Close()

	if err := conn.WriteJSON(req); err != nil {
		return wire.AuthResponse{}, err
	}

	var resp wire.AuthResponse
	if err := conn.ReadJSON(&resp); err != nil {
		return wire.AuthResponse{}, err
	}
	return resp, nil
}

// Leaderboard fetches and parses the ranked list, skipping the leading
// sentinel object
func (c *Client) Leaderboard() ([]model.LeaderboardEntry, error) {
	resp, err := c.http.Get(c.cfg.LeaderboardURL + "/leaderboard.json")
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}

	var entries []model.LeaderboardEntry
	for i, row := range rows {
		if i == 0 {
			continue
		}
		var e model.LeaderboardEntry
		if err := json.Unmarshal(row, &e); err != nil || e.Name == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
