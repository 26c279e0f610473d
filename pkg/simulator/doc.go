// Package simulator connects the cost-aware cache to a backing file store.
//
// A Simulator resolves a file id to its size in KiB through a file.Storage
// and then records the access in a cache.SafeStore. Missing files are
// reported as ErrFileNotFound and leave the cache untouched. Every access is
// logged with its outcome, cost and evicted entry.
//
// Basic usage:
//
//	store, _ := cache.NewSafeStore(2)
//	sim := simulator.New(store, file.NewMemoryStorage(), logger.New())
//
//	_, _ = sim.CreateFile(ctx, "A", 10)
//	res, err := sim.Access(ctx, "A")
//	// res.Outcome == cache.Miss
//
// The interactive menu, the HTTP API and trace replay all drive the cache
// through this package.
package simulator
