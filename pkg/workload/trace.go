package workload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/file"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

// FileSpec declares a backing file created before the accesses are replayed.
type FileSpec struct {
	ID      string `yaml:"id"`
	SizeKiB int64  `yaml:"size_kib"`
}

// Expectation is an optional assertion on the replay result.
// Nil fields are not checked.
type Expectation struct {
	Hits      *uint64  `yaml:"hits,omitempty"`
	Misses    *uint64  `yaml:"misses,omitempty"`
	Evictions *uint64  `yaml:"evictions,omitempty"`
	TotalCost *int64   `yaml:"total_cost,omitempty"`
	Cached    []string `yaml:"cached,omitempty"` // file ids in insertion order
}

// Trace is a replayable workload.
//
//	name: recency beats cost
//	capacity: 2
//	files:
//	  - {id: A, size_kib: 10}
//	  - {id: B, size_kib: 5}
//	accesses: [A, B, A, C]
type Trace struct {
	Name     string       `yaml:"name,omitempty"`
	Capacity int          `yaml:"capacity"`
	Files    []FileSpec   `yaml:"files"`
	Accesses []string     `yaml:"accesses"`
	Expect   *Expectation `yaml:"expect,omitempty"`
}

// Load decodes and validates a trace. Unknown fields are rejected.
func Load(r io.Reader) (*Trace, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Trace
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTrace
		}
		return nil, errors.Join(ErrFailedToParseTrace, err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a trace from path.
func LoadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadTrace, err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks capacity, file declarations and access ids.
// Accesses may name files that are not declared; they replay as not-found steps.
func (t *Trace) Validate() error {
	var errs []error

	if t.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity %d: %w", t.Capacity, cache.ErrInvalidCapacity))
	}

	seen := make(map[string]struct{}, len(t.Files))
	for i, f := range t.Files {
		if err := file.ValidateID(f.ID); err != nil {
			errs = append(errs, fmt.Errorf("files[%d]: %w", i, err))
			continue
		}
		if f.SizeKiB < 0 || f.SizeKiB > file.MaxSizeKiB {
			errs = append(errs, fmt.Errorf("files[%d] %s: %w", i, f.ID, file.ErrInvalidSize))
		}
		if _, dup := seen[f.ID]; dup {
			errs = append(errs, fmt.Errorf("files[%d]: duplicate id %q", i, f.ID))
		}
		seen[f.ID] = struct{}{}
	}

	for i, id := range t.Accesses {
		if err := file.ValidateID(id); err != nil {
			errs = append(errs, fmt.Errorf("accesses[%d]: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidTrace}, errs...)...)
	}
	return nil
}

// NewSimulator builds a simulator with the trace capacity over files.
func (t *Trace) NewSimulator(files file.Storage, log *slog.Logger) (*simulator.Simulator, error) {
	store, err := cache.NewSafeStore(t.Capacity)
	if err != nil {
		return nil, err
	}
	return simulator.New(store, files, log), nil
}
