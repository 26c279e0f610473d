package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize caps request bodies when no other limit is configured.
const DefaultMaxBodySize = 1 << 20

// Option configures a JSON binder.
type Option func(*options)

type options struct {
	maxBodySize int64
}

// WithMaxBodySize sets the largest accepted body in bytes. Values <= 0 keep
// the default.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// JSON returns a binder that decodes an application/json request body into v.
// Unknown fields and trailing data after the first value are rejected.
//
// Example:
//
//	bind := binder.JSON()
//
//	var req CreateFileRequest
//	if err := bind(r, &req); err != nil {
//		// errors.Is(err, binder.ErrInvalidJSON) ...
//	}
func JSON(opts ...Option) func(r *http.Request, v any) error {
	o := &options{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(o)
	}

	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, o.maxBodySize))
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			return decodeError(err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err != nil {
				return decodeError(err)
			}
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}

		return nil
	}
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
}
