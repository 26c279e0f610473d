package file

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// KiB is the number of bytes in one kibibyte.
const KiB = 1024

// MaxSizeKiB is the largest size whose byte count fits in an int64.
const MaxSizeKiB = math.MaxInt64 / KiB

// File describes a file in the backing store.
type File struct {
	ID       string `json:"id"`
	SizeKiB  int64  `json:"size_kib"`
	Size     int64  `json:"size"`               // bytes
	Location string `json:"location,omitempty"` // absolute path, object key or hash field
}

// Entry is a listing row.
type Entry struct {
	ID      string `json:"id"`
	SizeKiB int64  `json:"size_kib"`
}

// Storage is the backing store the cache fronts. Only existence and size
// matter; file contents are never read.
type Storage interface {
	// Exists reports whether the file is present.
	Exists(ctx context.Context, id string) bool
	// SizeKiB returns the file size in whole KiB, or ErrFileNotFound.
	SizeKiB(ctx context.Context, id string) (int64, error)
	// Create allocates a file of the given nominal size. It returns
	// ErrFileExists without touching the file if it is already present.
	Create(ctx context.Context, id string, sizeKiB int64) (*File, error)
	// List returns every file sorted by id.
	List(ctx context.Context) ([]Entry, error)
}

// Pinger is implemented by backends that can report their availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ToKiB converts a byte count to whole KiB, rounding down.
func ToKiB(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return size / KiB
}

// ValidateID checks that id names a single flat file.
// Separators, NUL bytes and directory references are rejected so that ids
// map onto the same key in every backend.
//
// Example:
//
//	if err := file.ValidateID("report.pdf"); err != nil {
//	    return err
//	}
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	}
	return nil
}

func validateCreate(id string, sizeKiB int64) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return validateSize(sizeKiB)
}

// validateSize accepts sizes in [0, MaxSizeKiB].
func validateSize(sizeKiB int64) error {
	if sizeKiB < 0 || sizeKiB > MaxSizeKiB {
		return fmt.Errorf("%w: %d KiB out of range [0, %d]", ErrInvalidSize, sizeKiB, int64(MaxSizeKiB))
	}
	return nil
}

// checkContext returns ctx.Err() when the context is already done.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
