package cache

import "errors"

var (
	// ErrInvalidCapacity is returned when a store is created with capacity <= 0.
	// Such a store could never satisfy the non-empty precondition of eviction.
	ErrInvalidCapacity = errors.New("cache capacity must be positive")
)
