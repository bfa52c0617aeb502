package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/persistence"
	"github.com/MrSnakeDoc/shelf/internal/redis"
	"github.com/MrSnakeDoc/shelf/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
	"github.com/MrSnakeDoc/shelf/internal/store/sqlite"
)

// OpenStorage opens the configured KV backend, namespaced by KeyPrefix.
// The caller owns the returned store and must Close it.
func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (persistence.KV, error) {
	var kv persistence.KV

	switch cfg.Storage {
	case config.StorageSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		log.Info("sqlite storage opened", logger.String("path", cfg.SQLitePath))
		kv = s

	case config.StorageRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		kv = redisstore.NewStore(client)

	case config.StorageMemory:
		log.Warn("memory storage selected, the library will not survive a restart")
		kv = memory.New()

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return persistence.Namespaced(kv, cfg.KeyPrefix), nil
}

// NewAdapter builds the persistence adapter with the configured seed and
// ambient theme.
func NewAdapter(cfg *config.Config, kv persistence.KV, log logger.Logger) (*persistence.Adapter, error) {
	opts := []persistence.Option{
		persistence.WithAmbientTheme(persistence.AmbientTheme(cfg.AmbientTheme)),
	}

	if cfg.SeedFile != "" {
		seed, err := persistence.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file: %w", err)
		}
		log.Info("custom seed loaded",
			logger.String("file", cfg.SeedFile),
			logger.Int("books", len(seed)))
		opts = append(opts, persistence.WithSeed(seed))
	}

	return persistence.NewAdapter(kv, log, opts...), nil
}
