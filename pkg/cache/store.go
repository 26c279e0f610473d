package cache

import "slices"

// Store is a fixed-capacity cache of file entries with cost-aware LRU eviction.
// It is not safe for concurrent use; see SafeStore.
type Store struct {
	capacity int
	items    map[string]*Entry
	order    []string // insertion order, used for display and as the final tie-break
	clock    uint64
	onEvict  func(Entry)

	hits      uint64
	misses    uint64
	evictions uint64
	totalCost int64
}

// Option configures a Store.
type Option func(*Store)

// WithEvictCallback sets a callback invoked with every evicted entry.
// On a Store the callback runs before the new entry is inserted and must not
// call back into the Store. A SafeStore invokes it after the access has
// completed and outside its lock, so the callback may use the SafeStore.
func WithEvictCallback(fn func(Entry)) Option {
	return func(s *Store) {
		s.onEvict = fn
	}
}

// AccessResult describes the effect of one access.
type AccessResult struct {
	Outcome Outcome
	Entry   Entry  // the cached entry after the access
	Evicted *Entry // non-nil when admission evicted another entry
}

// NewStore creates a store with the given capacity.
// It returns ErrInvalidCapacity when capacity is not positive.
func NewStore(capacity int, opts ...Option) (*Store, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	s := &Store{
		capacity: capacity,
		items:    make(map[string]*Entry, capacity),
		order:    make([]string, 0, capacity),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// MustNewStore is like NewStore but panics on invalid capacity.
func MustNewStore(capacity int, opts ...Option) *Store {
	s, err := NewStore(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Access records an access to fileID whose backing file is cost KiB large.
// A hit refreshes the entry's LastAccess and leaves its cost untouched.
// A miss admits the file, evicting one entry first if the store is full.
func (s *Store) Access(fileID string, cost int64) Outcome {
	return s.AccessDetailed(fileID, cost).Outcome
}

// AccessDetailed is Access that also reports the resulting entry and the
// evicted one, if any.
func (s *Store) AccessDetailed(fileID string, cost int64) AccessResult {
	s.clock++

	if e, ok := s.items[fileID]; ok {
		e.LastAccess = s.clock
		s.hits++
		return AccessResult{Outcome: Hit, Entry: *e}
	}

	cost = max(cost, 0)
	s.misses++
	s.totalCost += cost

	var evicted *Entry
	if len(s.items) >= s.capacity {
		evicted = s.evict()
	}

	e := &Entry{FileID: fileID, LastAccess: s.clock, Cost: cost}
	s.items[fileID] = e
	s.order = append(s.order, fileID)

	return AccessResult{Outcome: Miss, Entry: *e, Evicted: evicted}
}

// Stats returns a snapshot of the counters.
func (s *Store) Stats() Stats {
	return newStats(s.hits, s.misses, s.evictions, s.totalCost)
}

// Entries returns a copy of the cached entries in insertion order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, *s.items[id])
	}
	return entries
}

// Get returns the entry for fileID without counting an access.
func (s *Store) Get(fileID string) (Entry, bool) {
	if e, ok := s.items[fileID]; ok {
		return *e, true
	}
	return Entry{}, false
}

// Contains reports whether fileID is cached, without counting an access.
func (s *Store) Contains(fileID string) bool {
	_, ok := s.items[fileID]
	return ok
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Capacity() int {
	return s.capacity
}

// Clock returns the current logical time, equal to the number of accesses so far.
func (s *Store) Clock() uint64 {
	return s.clock
}

// evict removes the entry chosen by SelectVictim and returns it.
func (s *Store) evict() *Entry {
	id, ok := SelectVictim(s.Entries())
	if !ok {
		return nil
	}

	victim := *s.items[id]
	delete(s.items, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.evictions++

	if s.onEvict != nil {
		s.onEvict(victim)
	}

	return &victim
}
