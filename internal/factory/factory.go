package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/storage"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	redisstorage "github.com/mcoot/tictactoe-go/internal/storage/redis"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// The broadcaster is the controller's change notifier
var _ game.Notifier = (*sse.Broadcaster)(nil)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	GameController *game.Controller
	SessionService *session.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster

	closers []io.Closer
	logger  *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// SessionConfig holds configuration for the session service (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MemoryConfig holds expiry settings for memory storage
	// If nil, defaults to memory.DefaultConfig()
	MemoryConfig *memory.Config
}

// ConfigFrom builds a factory Config from the server configuration
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	fc := Config{
		SessionConfig: session.Config{SessionDuration: cfg.SessionTTL},
		Logger:        logger,
		StorageType:   cfg.Storage.Type,
	}
	switch cfg.Storage.Type {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		redisCfg.GameTTL = cfg.Storage.GameTTL
		redisCfg.SessionTTL = cfg.SessionTTL
		fc.RedisConfig = &redisCfg
	default:
		fc.MemoryConfig = &memory.Config{
			GameTTL:    cfg.Storage.GameTTL,
			SessionTTL: cfg.SessionTTL,
		}
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	var closers []io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	clk := clock.New()
	switch storageType {
	case StorageTypeMemory:
		memCfg := memory.DefaultConfig()
		if cfg.MemoryConfig != nil {
			memCfg = *cfg.MemoryConfig
		}
		store = memory.New(memCfg, clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	logger.Info("storage configured", slog.String("type", storageType))

	app := newWithDependencies(store, clk, random.New(), cfg.SessionConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, sessionCfg session.Config, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	gameController := game.NewController(store, clk, rnd, broadcaster, logger.With(slog.String("component", "game")))
	sessionService := session.New(store, clk, rnd, sessionCfg, logger.With(slog.String("component", "session")))

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		GameController: gameController,
		SessionService: sessionService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
		logger:         logger,
	}
}

// Sweep runs housekeeping every interval until ctx is done: SSE hubs nobody
// is watching are dropped, and storage that cannot expire entries itself is pruned.
func (a *App) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.sweepOnce(ctx)
		}
	}
}

func (a *App) sweepOnce(ctx context.Context) {
	hubs := a.HubManager.CleanupEmptyHubs()

	pruned := 0
	if p, ok := a.Storage.(storage.Pruner); ok {
		n, err := p.PruneExpired(ctx)
		if err != nil {
			a.logger.Error("failed to prune storage", slog.String("error", err.Error()))
		}
		pruned = n
	}

	if hubs > 0 || pruned > 0 {
		a.logger.Debug("sweep finished",
			slog.Int("hubs_removed", hubs),
			slog.Int("entries_pruned", pruned))
	}
}

// Close disconnects live streams and releases storage connections
func (a *App) Close() error {
	a.HubManager.CloseAll()

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
