package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"frontier/internal/platform/config"
	platformredis "frontier/internal/platform/redis"
	"frontier/internal/storage"
	"frontier/internal/storage/memory"
	"frontier/internal/storage/postgres"
	storageredis "frontier/internal/storage/redis"
	"frontier/internal/storage/sqlite"
)

// Backend is the opened storage layer.
type Backend struct {
	Records storage.Store
	// Redis is set when a redis url is configured, whichever record backend
	// is selected.
	Redis *platformredis.Client
}

// Close releases the record store and the redis client.
func (b *Backend) Close() error {
	err := b.Records.Close()
	if b.Redis != nil {
		err = errors.Join(err, b.Redis.Close())
	}
	return err
}

// OpenStore constructs the configured record store.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	var client *platformredis.Client
	if cfg.Redis.URL != "" {
		c, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		client = c
	}

	records, err := openRecords(ctx, cfg, client, logger)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, err
	}
	return &Backend{Records: records, Redis: client}, nil
}

func openRecords(ctx context.Context, cfg *config.Config, client *platformredis.Client, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("sqlite store opened", "path", cfg.Storage.SQLitePath)
		return s, nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("postgres store opened")
		return s, nil
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("storage backend %q requires a redis url", cfg.Storage.Backend)
		}
		logger.Info("redis store opened", "key_prefix", cfg.Redis.KeyPrefix)
		return storageredis.New(client.Client, storageredis.WithKeyPrefix(cfg.Redis.KeyPrefix)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
