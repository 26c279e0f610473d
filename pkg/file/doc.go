// Package file provides the backing store the cache fronts: a flat catalogue
// of files where only existence and size matter.
//
// The package is built around the Storage interface:
//   - Exists reports whether a file id is present
//   - SizeKiB reports its size in whole kibibytes (rounded down)
//   - Create allocates a file of a nominal size, refusing duplicates
//   - List returns every file sorted by id
//
// Four implementations are provided:
//   - LocalStorage: one directory on disk, files allocated sparse via truncate
//   - S3Storage: objects under a key prefix in AWS S3 or an S3-compatible service
//   - RedisStorage: one Redis hash mapping ids to sizes
//   - MemoryStorage: a map, for tests and throwaway sessions
//
// # Usage
//
//	storage, err := file.NewLocalStorage("Files")
//	if err != nil {
//		return err
//	}
//
//	if _, err := storage.Create(ctx, "scan-001.png", 120); errors.Is(err, file.ErrFileExists) {
//		// duplicate create is reported, nothing is overwritten
//	}
//
//	size, err := storage.SizeKiB(ctx, "scan-001.png") // 120
//
// Using S3 storage:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket:         "sim-files",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	})
//
// # File Ids
//
// Ids name a single flat file. ValidateID rejects empty ids, "." and "..",
// and anything containing a path separator or NUL byte, so the same id maps
// onto a file name, an object key suffix and a hash field alike.
//
// # Error Handling
//
//	if _, err := storage.SizeKiB(ctx, id); errors.Is(err, file.ErrFileNotFound) {
//		// report and do not touch the cache
//	}
//
// Backend-specific failures are mapped to package errors:
//   - S3 NoSuchKey / NotFound -> ErrFileNotFound
//   - S3 PreconditionFailed on conditional create -> ErrFileExists
//   - Redis connection failures -> ErrStorageUnavailable
package file
