package cache

import "sync"

// SafeStore wraps a Store with a mutex so it can be shared between goroutines.
// Every method holds the lock for its whole duration, except the evict
// callback, which runs after the lock is released and may call back into
// the SafeStore.
type SafeStore struct {
	mu      sync.Mutex
	store   *Store
	onEvict func(Entry)
}

// NewSafeStore creates a synchronized store with the given capacity.
func NewSafeStore(capacity int, opts ...Option) (*SafeStore, error) {
	s, err := NewStore(capacity, opts...)
	if err != nil {
		return nil, err
	}

	// The callback moves out of the inner store so it never runs under mu.
	onEvict := s.onEvict
	s.onEvict = nil
	return &SafeStore{store: s, onEvict: onEvict}, nil
}

func (s *SafeStore) Access(fileID string, cost int64) Outcome {
	return s.AccessDetailed(fileID, cost).Outcome
}

// AccessDetailed is Store.AccessDetailed under the lock. The evict callback,
// if any, is invoked once the new entry is already in place.
func (s *SafeStore) AccessDetailed(fileID string, cost int64) AccessResult {
	s.mu.Lock()
	res := s.store.AccessDetailed(fileID, cost)
	s.mu.Unlock()

	if res.Evicted != nil && s.onEvict != nil {
		s.onEvict(*res.Evicted)
	}
	return res
}

func (s *SafeStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Stats()
}

func (s *SafeStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Entries()
}

func (s *SafeStore) Get(fileID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(fileID)
}

func (s *SafeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

func (s *SafeStore) Capacity() int {
	// capacity is immutable
	return s.store.Capacity()
}
