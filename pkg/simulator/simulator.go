package simulator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/logger"
)

// AccessResult describes one resolved access.
type AccessResult struct {
	FileID  string        `json:"file_id"`
	Outcome cache.Outcome `json:"outcome"`
	Cost    int64         `json:"cost"`  // cost of the cached entry, fixed at admission
	Clock   uint64        `json:"clock"` // logical time of this access
	Evicted *cache.Entry  `json:"evicted,omitempty"`
	Entries []cache.Entry `json:"entries"` // cache contents right after the access
}

// Hit reports whether the access was served from the cache.
func (r AccessResult) Hit() bool {
	return r.Outcome == cache.Hit
}

// Simulator fronts a file store with a cost-aware LRU cache.
type Simulator struct {
	store  *cache.SafeStore
	files  file.Storage
	logger *slog.Logger

	// mu keeps an access and its entries snapshot together.
	mu sync.Mutex
}

// New creates a simulator. A nil logger falls back to slog.Default.
func New(store *cache.SafeStore, files file.Storage, log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{
		store:  store,
		files:  files,
		logger: log,
	}
}

// Access resolves id in the backing store and records the access in the cache.
// It returns ErrFileNotFound, without touching the cache, when the file is absent.
func (s *Simulator) Access(ctx context.Context, id string) (AccessResult, error) {
	cost, err := s.files.SizeKiB(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "file access failed", logger.FileID(id), logger.Error(err))
		return AccessResult{FileID: id}, err
	}

	s.mu.Lock()
	res := s.store.AccessDetailed(id, cost)
	entries := s.store.Entries()
	s.mu.Unlock()

	attrs := []any{
		logger.FileID(id),
		logger.Outcome(res.Outcome.String()),
		logger.Cost(res.Entry.Cost),
		logger.Clock(res.Entry.LastAccess),
	}
	if res.Evicted != nil {
		attrs = append(attrs, logger.Evicted(res.Evicted.FileID, res.Evicted.Cost, res.Evicted.LastAccess))
	}
	s.logger.InfoContext(ctx, "file accessed", attrs...)

	return AccessResult{
		FileID:  id,
		Outcome: res.Outcome,
		Cost:    res.Entry.Cost,
		Clock:   res.Entry.LastAccess,
		Evicted: res.Evicted,
		Entries: entries,
	}, nil
}

// CreateFile creates a file of sizeKiB in the backing store.
// The cache is not affected.
func (s *Simulator) CreateFile(ctx context.Context, id string, sizeKiB int64) (*file.File, error) {
	f, err := s.files.Create(ctx, id, sizeKiB)
	if err != nil {
		s.logger.WarnContext(ctx, "file creation failed", logger.FileID(id), logger.Error(err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "file created", logger.FileID(id), logger.Cost(f.SizeKiB))
	return f, nil
}

// ListFiles returns every file in the backing store sorted by id.
func (s *Simulator) ListFiles(ctx context.Context) ([]file.Entry, error) {
	return s.files.List(ctx)
}

// Stats returns the cache counters.
func (s *Simulator) Stats() cache.Stats {
	return s.store.Stats()
}

// Entries returns the cached entries in insertion order.
func (s *Simulator) Entries() []cache.Entry {
	return s.store.Entries()
}

// Capacity returns the cache capacity.
func (s *Simulator) Capacity() int {
	return s.store.Capacity()
}

// Ping checks the backing store when it supports health checks.
func (s *Simulator) Ping(ctx context.Context) error {
	if p, ok := s.files.(file.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
