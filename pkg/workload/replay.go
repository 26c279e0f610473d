package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

// StepOutcome is the result of one replayed access.
type StepOutcome string

const (
	StepHit      StepOutcome = "hit"
	StepMiss     StepOutcome = "miss"
	StepNotFound StepOutcome = "not_found"
)

// Step is one replayed access.
type Step struct {
	Index   int          `json:"index"`
	FileID  string       `json:"file_id"`
	Outcome StepOutcome  `json:"outcome"`
	Cost    int64        `json:"cost"`
	Clock   uint64       `json:"clock,omitempty"`
	Evicted *cache.Entry `json:"evicted,omitempty"`
}

// Report summarizes a replay.
type Report struct {
	Name     string        `json:"name,omitempty"`
	Capacity int           `json:"capacity"`
	Created  int           `json:"created"`  // files created by the replay
	Existing int           `json:"existing"` // declared files that were already present
	NotFound int           `json:"not_found"`
	Steps    []Step        `json:"steps"`
	Stats    cache.Stats   `json:"stats"`
	Entries  []cache.Entry `json:"entries"`
}

// Run creates the declared files and replays every access against sim.
// Files that already exist are kept as they are. Accesses to missing files
// are recorded as not-found steps. Any other storage error stops the replay.
func Run(ctx context.Context, t *Trace, sim *simulator.Simulator) (*Report, error) {
	rep := &Report{
		Name:     t.Name,
		Capacity: sim.Capacity(),
		Steps:    make([]Step, 0, len(t.Accesses)),
	}

	for _, f := range t.Files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrReplayCanceled, err)
		}
		_, err := sim.CreateFile(ctx, f.ID, f.SizeKiB)
		switch {
		case err == nil:
			rep.Created++
		case errors.Is(err, simulator.ErrFileExists):
			rep.Existing++
		default:
			return nil, errors.Join(ErrReplayFailed, fmt.Errorf("create %s: %w", f.ID, err))
		}
	}

	for i, id := range t.Accesses {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrReplayCanceled, err)
		}

		res, err := sim.Access(ctx, id)
		if errors.Is(err, simulator.ErrFileNotFound) {
			rep.NotFound++
			rep.Steps = append(rep.Steps, Step{Index: i, FileID: id, Outcome: StepNotFound})
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrReplayFailed, fmt.Errorf("access %s at step %d: %w", id, i, err))
		}

		step := Step{
			Index:   i,
			FileID:  id,
			Outcome: StepMiss,
			Cost:    res.Cost,
			Clock:   res.Clock,
			Evicted: res.Evicted,
		}
		if res.Hit() {
			step.Outcome = StepHit
		}
		rep.Steps = append(rep.Steps, step)
	}

	rep.Stats = sim.Stats()
	rep.Entries = sim.Entries()

	return rep, nil
}

// Verify compares the report with exp. A nil expectation always passes.
func (r *Report) Verify(exp *Expectation) error {
	if exp == nil {
		return nil
	}

	var errs []error
	if exp.Hits != nil && *exp.Hits != r.Stats.Hits {
		errs = append(errs, fmt.Errorf("hits: want %d, got %d", *exp.Hits, r.Stats.Hits))
	}
	if exp.Misses != nil && *exp.Misses != r.Stats.Misses {
		errs = append(errs, fmt.Errorf("misses: want %d, got %d", *exp.Misses, r.Stats.Misses))
	}
	if exp.Evictions != nil && *exp.Evictions != r.Stats.Evictions {
		errs = append(errs, fmt.Errorf("evictions: want %d, got %d", *exp.Evictions, r.Stats.Evictions))
	}
	if exp.TotalCost != nil && *exp.TotalCost != r.Stats.TotalCost {
		errs = append(errs, fmt.Errorf("total cost: want %d, got %d", *exp.TotalCost, r.Stats.TotalCost))
	}
	if exp.Cached != nil {
		got := make([]string, 0, len(r.Entries))
		for _, e := range r.Entries {
			got = append(got, e.FileID)
		}
		if !slices.Equal(exp.Cached, got) {
			errs = append(errs, fmt.Errorf("cached: want %v, got %v", exp.Cached, got))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrUnmetExpectation}, errs...)...)
	}
	return nil
}
