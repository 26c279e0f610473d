package simulator

import "github.com/dmitrymomot/costcache/pkg/file"

var (
	// ErrFileNotFound is returned when an accessed file is absent from the backing store.
	ErrFileNotFound = file.ErrFileNotFound

	// ErrFileExists is returned when creating a file that already exists.
	ErrFileExists = file.ErrFileExists
)
