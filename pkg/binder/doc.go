// Package binder decodes HTTP request bodies into Go values.
//
// JSON checks the Content-Type, limits the body size and decodes strictly:
// unknown fields and trailing data are errors. Failures wrap one of
// ErrMissingContentType, ErrUnsupportedMediaType, ErrInvalidJSON or
// ErrBodyTooLarge so callers can map them to status codes.
package binder
