package file

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MemoryStorage implements Storage in memory for tests and local experiments.
type MemoryStorage struct {
	mu    sync.RWMutex
	files map[string]int64 // id -> size in bytes
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string]int64)}
}

func (s *MemoryStorage) Exists(ctx context.Context, id string) bool {
	if checkContext(ctx) != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[id]
	return ok
}

func (s *MemoryStorage) SizeKiB(ctx context.Context, id string) (int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	size, ok := s.files[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	return ToKiB(size), nil
}

func (s *MemoryStorage) Create(ctx context.Context, id string, sizeKiB int64) (*File, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCreate(id, sizeKiB); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, id)
	}

	size := sizeKiB * KiB
	s.files[id] = size

	return &File{ID: id, SizeKiB: sizeKiB, Size: size}, nil
}

func (s *MemoryStorage) List(ctx context.Context) ([]Entry, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]Entry, 0, len(s.files))
	for id, size := range s.files {
		entries = append(entries, Entry{ID: id, SizeKiB: ToKiB(size)})
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries, nil
}

// Resize changes the stored size of an existing file, simulating an external
// modification. Cached costs are not affected.
func (s *MemoryStorage) Resize(id string, sizeKiB int64) error {
	if err := validateSize(sizeKiB); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	s.files[id] = sizeKiB * KiB
	return nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return checkContext(ctx)
}
