package cache

// Outcome reports whether an access was served from the cache.
type Outcome int

const (
	// Miss means the file was not cached and has been admitted.
	Miss Outcome = iota
	// Hit means the file was already cached.
	Hit
)

// String returns "hit" or "miss".
func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}
	return "miss"
}

// MarshalText encodes the outcome as "hit" or "miss".
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Entry is a single cached file.
type Entry struct {
	FileID     string `json:"file_id"`
	LastAccess uint64 `json:"last_access"`
	Cost       int64  `json:"cost"` // size in KiB at admission time
}
