package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on top of a single local directory.
// Files are allocated sparse, so large nominal sizes cost no disk space.
// All operations are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir  string      // Absolute path - all files stored within this directory
	fileMode os.FileMode // Permissions for created files
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithFileMode sets permissions for newly created files (default 0644).
func WithFileMode(mode os.FileMode) LocalOption {
	return func(s *LocalStorage) {
		s.fileMode = mode
	}
}

// NewLocalStorage creates a storage rooted at baseDir.
// baseDir is resolved to an absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	s := &LocalStorage{
		baseDir:  absBaseDir,
		fileMode: 0644,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// BaseDir returns the absolute storage directory.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Exists reports whether a regular file with the given id exists.
// Returns false for invalid ids or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, id string) bool {
	if checkContext(ctx) != nil {
		return false
	}

	info, err := s.stat(id)
	return err == nil && !info.IsDir()
}

// SizeKiB returns the file size in whole KiB.
func (s *LocalStorage) SizeKiB(ctx context.Context, id string) (int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	info, err := s.stat(id)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}

	return ToKiB(info.Size()), nil
}

// Create allocates a sparse file of sizeKiB KiB.
// O_EXCL makes the existence check and the creation one step.
func (s *LocalStorage) Create(ctx context.Context, id string, sizeKiB int64) (*File, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCreate(id, sizeKiB); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(id)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileExists, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	size := sizeKiB * KiB
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		_ = os.Remove(absPath) // Clean up partial file
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	return &File{
		ID:       id,
		SizeKiB:  sizeKiB,
		Size:     size,
		Location: absPath,
	}, nil
}

// List returns all regular files in the base directory.
// Subdirectories and entries that cannot be stat'ed are skipped.
func (s *LocalStorage) List(ctx context.Context) ([]Entry, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	// os.ReadDir returns entries sorted by filename
	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		// Allow cancellation during large directory listings
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		if dirEntry.IsDir() {
			continue
		}

		info, err := dirEntry.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			ID:      dirEntry.Name(),
			SizeKiB: ToKiB(info.Size()),
		})
	}

	return entries, nil
}

// Ping verifies the base directory is still accessible.
func (s *LocalStorage) Ping(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrStorageUnavailable, s.baseDir)
	}
	return nil
}

func (s *LocalStorage) stat(id string) (os.FileInfo, error) {
	absPath, err := s.resolvePath(id)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	return info, nil
}

// resolvePath validates id and resolves it within the base directory.
// The result always stays strictly inside baseDir.
func (s *LocalStorage) resolvePath(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, id))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, id)
	}

	return absPath, nil
}
