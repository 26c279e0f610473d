package file

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.UniversalClient used by RedisStorage.
type RedisClient interface {
	HExists(ctx context.Context, key, field string) *redis.BoolCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSetNX(ctx context.Context, key, field string, value any) *redis.BoolCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStorage keeps file sizes in a single Redis hash (<prefix>:files),
// field = file id, value = size in KiB. Several simulator processes can
// share one catalogue this way.
type RedisStorage struct {
	db  RedisClient
	key string
}

// RedisOption configures RedisStorage.
type RedisOption func(*RedisStorage)

// WithRedisKeyPrefix changes the hash key prefix (default "costcache").
func WithRedisKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStorage) {
		if prefix != "" {
			s.key = prefix + ":files"
		}
	}
}

// NewRedisStorage wraps a connected Redis client.
func NewRedisStorage(client RedisClient, opts ...RedisOption) (*RedisStorage, error) {
	if client == nil {
		return nil, ErrInvalidConfig
	}

	s := &RedisStorage{db: client, key: "costcache:files"}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStorage) Exists(ctx context.Context, id string) bool {
	ok, err := s.db.HExists(ctx, s.key, id).Result()
	return err == nil && ok
}

func (s *RedisStorage) SizeKiB(ctx context.Context, id string) (int64, error) {
	val, err := s.db.HGet(ctx, s.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	if err != nil {
		return 0, errors.Join(ErrStorageUnavailable, err)
	}

	size, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: corrupt size %q for %s", ErrInvalidSize, val, id)
	}
	return size, nil
}

// Create registers the file with HSETNX, which fails atomically when the id
// is already present.
func (s *RedisStorage) Create(ctx context.Context, id string, sizeKiB int64) (*File, error) {
	if err := validateCreate(id, sizeKiB); err != nil {
		return nil, err
	}

	created, err := s.db.HSetNX(ctx, s.key, id, strconv.FormatInt(sizeKiB, 10)).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateFile, err)
	}
	if !created {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, id)
	}

	return &File{
		ID:       id,
		SizeKiB:  sizeKiB,
		Size:     sizeKiB * KiB,
		Location: s.key + "/" + id,
	}, nil
}

// List reads the whole hash. Rows with unparsable sizes are skipped.
func (s *RedisStorage) List(ctx context.Context) ([]Entry, error) {
	all, err := s.db.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}

	entries := make([]Entry, 0, len(all))
	for id, val := range all {
		size, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{ID: id, SizeKiB: size})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries, nil
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
