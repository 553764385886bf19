package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/Sixteen1-6/Pong/internal/dependencies/clock"
	"github.com/Sixteen1-6/Pong/internal/dependencies/random"
	"github.com/Sixteen1-6/Pong/internal/server"
	"github.com/Sixteen1-6/Pong/internal/services/auth"
	"github.com/Sixteen1-6/Pong/internal/services/game"
	"github.com/Sixteen1-6/Pong/internal/services/leaderboard"
	"github.com/Sixteen1-6/Pong/internal/storage"
	filestorage "github.com/Sixteen1-6/Pong/internal/storage/file"
	"github.com/Sixteen1-6/Pong/internal/storage/memory"
	redisstorage "github.com/Sixteen1-6/Pong/internal/storage/redis"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Source

	// Transport
	Codec *wire.Codec

	// Services
	TokenStore  *auth.TokenStore
	AuthService *auth.Service
	Registry    *game.Registry
	Matchmaker  *game.Matchmaker
	Leaderboard *leaderboard.Service

	// Servers
	GameServer        *server.GameServer
	AuthServer        *server.AuthServer
	LeaderboardServer *server.LeaderboardServer
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// DataDir is where the file backend and the leaderboard HTTP server
	// keep users.json and leaderboard.json. Defaults to the working dir.
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Passphrase overrides the transport passphrase (optional; both peers
	// must agree, so only change it if the clients change too)
	Passphrase string
	// TokenTTL overrides the token lifetime (optional)
	TokenTTL time.Duration
	// Server configs (optional; zero values take the defaults)
	Game server.GameConfig
	Auth server.AuthConfig
	HTTP server.HTTPConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		store = filestorage.New(dataDir)
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	passphrase := cfg.Passphrase
	if passphrase == "" {
		passphrase = wire.DefaultPassphrase
	}
	codec, err := wire.NewCodec(passphrase)
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	rnd := random.New()

	gameCfg := cfg.Game
	if gameCfg.Addr == "" {
		gameCfg = server.DefaultGameConfig()
	}
	authCfg := cfg.Auth
	if authCfg.Addr == "" {
		authCfg = server.DefaultAuthConfig()
	}
	httpCfg := cfg.HTTP
	if httpCfg.Addr == "" {
		httpCfg = server.DefaultHTTPConfig()
	}

	tokens := auth.NewTokenStore(clk, rnd, cfg.TokenTTL)
	authService := auth.New(store, tokens, rnd, logger)
	registry := game.NewRegistry()
	matchmaker := game.NewMatchmaker(registry)
	board := leaderboard.New(store, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Codec:       codec,
		TokenStore:  tokens,
		AuthService: authService,
		Registry:    registry,
		Matchmaker:  matchmaker,
		Leaderboard: board,
		GameServer: server.NewGameServer(
			gameCfg, codec, tokens, matchmaker, registry, board, logger,
		),
		AuthServer:        server.NewAuthServer(authCfg, codec, authService, logger),
		LeaderboardServer: server.NewLeaderboardServer(httpCfg, dataDir, logger),
	}, nil
}
