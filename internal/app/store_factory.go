package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/zentask/internal/config"
	"github.com/sandeepkv93/zentask/internal/storage"
)

// OpenStore creates the key-value backend named by cfg.Backend.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.BackendFile:
		s, err := storage.OpenFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		s, err := storage.OpenRedis(ctx, storage.RedisOptions{
			URL:              cfg.RedisURL,
			Prefix:           cfg.RedisPrefix,
			FailureThreshold: uint32(max(cfg.RedisBreakerThreshold, 0)),
			Logger:           logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}
