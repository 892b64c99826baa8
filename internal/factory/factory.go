package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/dependencies/clock"
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/images"
	"github.com/mememaster/lobby/internal/lobby"
	"github.com/mememaster/lobby/internal/storage"
	"github.com/mememaster/lobby/internal/storage/memory"
	redisstorage "github.com/mememaster/lobby/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Bus     *bus.Bus
	Manager *lobby.Manager
	Fetcher *images.Fetcher

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ImageURL is the random image source (optional)
	ImageURL string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, logger)
	app.Fetcher = images.NewFetcher(nil, cfg.ImageURL, logger)
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Storage: store,
		Clock:   clk,
		Random:  rnd,
		Bus:     bus.New(logger),
		Manager: lobby.NewManager(store, clk, rnd, logger),
		Logger:  logger,
	}
}

// NewSession creates a participant session against this app's bus and manager
func (a *App) NewSession(ctx context.Context, cfg lobby.SessionConfig) *lobby.Session {
	return lobby.NewSession(ctx, a.Bus, a.Manager, a.Random, a.Logger, cfg)
}
