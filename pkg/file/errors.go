package file

import "errors"

var (
	// Validation errors
	ErrInvalidID   = errors.New("invalid file id")
	ErrInvalidPath = errors.New("invalid path") // Prevents path traversal attacks
	ErrInvalidSize = errors.New("invalid file size")

	// Backing store errors
	ErrFileNotFound = errors.New("file not found")
	ErrFileExists   = errors.New("file already exists")

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")

	// Remote backend errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrStorageUnavailable = errors.New("storage backend unavailable")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrPaginatorNil       = errors.New("paginator factory returned nil") // Testing support
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
