package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/logger"
	"github.com/dmitrymomot/costcache/pkg/redis"
)

var errUnknownBackend = errors.New("unknown storage backend")

// openStorage builds the configured backend. The returned close function
// is never nil.
func openStorage(ctx context.Context, cfg Config, log *slog.Logger) (file.Storage, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case backendLocal, "":
		s, err := file.NewLocalStorage(cfg.FilesDir)
		if err != nil {
			return nil, noop, err
		}
		log.DebugContext(ctx, "using local storage", slog.String("dir", s.BaseDir()))
		return s, noop, nil

	case backendMemory:
		return file.NewMemoryStorage(), noop, nil

	case backendS3:
		s, err := file.NewS3Storage(ctx, cfg.S3, file.WithS3Timeout(cfg.S3Timeout))
		if err != nil {
			return nil, noop, err
		}
		log.DebugContext(ctx, "using s3 storage", slog.String("bucket", cfg.S3.Bucket))
		return s, noop, nil

	case backendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		s, err := file.NewRedisStorage(client, file.WithRedisKeyPrefix(cfg.Redis.KeyPrefix))
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		log.DebugContext(ctx, "using redis storage", slog.String("prefix", cfg.Redis.KeyPrefix))
		return s, func() {
			if err := client.Close(); err != nil {
				log.WarnContext(ctx, "closing redis client", logger.Error(err))
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Backend)
	}
}
