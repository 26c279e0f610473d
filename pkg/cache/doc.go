// Package cache implements a fixed-capacity, cost-aware LRU cache state machine
// used to study admission, hit/miss accounting and eviction for files kept in
// a backing store.
//
// The cache never touches file contents. Callers resolve a file identifier to
// its size in KiB through a backing store and pass that size as the entry cost.
//
// # Key Features
//
//   - Logical clock advanced once per access, used instead of wall time
//   - Hit, miss, eviction and total miss cost counters
//   - Cost-aware eviction: oldest access first, cheapest file among ties
//   - Deterministic victim selection for full ties (insertion order)
//   - Optional eviction callbacks for reporting evicted entries
//   - SafeStore wrapper for hosts that share one store across goroutines
//
// # Usage
//
// Create a store with a fixed capacity:
//
//	store, err := cache.NewStore(2)
//	if err != nil {
//		return err // cache.ErrInvalidCapacity for capacity <= 0
//	}
//
//	store.Access("A", 10) // cache.Miss
//	store.Access("B", 5)  // cache.Miss
//	store.Access("A", 10) // cache.Hit, A now has the newest timestamp
//	store.Access("C", 1)  // cache.Miss, B is evicted
//
//	stats := store.Stats()
//	fmt.Println(stats.Hits, stats.Misses, stats.TotalCost, stats.HitRatio) // 1 3 16 0.25
//
// # Eviction Policy
//
// When an access misses and the store is full, SelectVictim picks exactly one
// entry to remove:
//
//  1. The entry with the smallest LastAccess wins.
//  2. Among entries with equal LastAccess, the one with the smallest Cost wins.
//  3. Among entries equal on both keys, the first one in the input order wins.
//
// The third rule is a policy relaxation, not an accident: the store always
// passes its entries in insertion order, so the choice is stable for a given
// access sequence.
//
// # Cost Semantics
//
// Cost is fixed when an entry is admitted. Later hits update LastAccess only,
// even if the caller reports a different size for the same file. TotalCost sums
// the cost of every miss, including misses whose entries were later evicted.
//
// # Thread Safety
//
// Store is meant for a single caller. Hosts that serve concurrent requests
// must use SafeStore, which runs every operation, including the full
// clock-check-evict-insert sequence of Access, under one mutex:
//
//	safe, err := cache.NewSafeStore(64)
//	if err != nil {
//		return err
//	}
//	go safe.Access("a", 3)
//	go safe.Access("b", 4)
package cache
