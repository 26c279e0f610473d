package requestid

import "net/http"

// Header is the request and response header carrying the id.
const Header = "X-Request-ID"

const maxIDLength = 128

// Option configures the middleware.
type Option func(*options)

type options struct {
	generate func() string
}

// WithGenerator replaces the uuid generator.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// New returns middleware that reuses a valid incoming X-Request-ID or
// generates a new one, stores it in the request context and echoes it in
// the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := &options{generate: Generate}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !Valid(id) {
				id = o.generate()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// Valid reports whether id is non-empty, at most 128 bytes and made of
// ASCII letters, digits, '-' and '_'.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
