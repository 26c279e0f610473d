package cache

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Requests  uint64  `json:"requests"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	TotalCost int64   `json:"total_cost"`
	HitRatio  float64 `json:"hit_ratio"` // in [0,1], 0 before the first access
}

func newStats(hits, misses, evictions uint64, totalCost int64) Stats {
	st := Stats{
		Requests:  hits + misses,
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		TotalCost: totalCost,
	}
	if st.Requests > 0 {
		st.HitRatio = float64(hits) / float64(st.Requests)
	}
	return st
}

// HitPercent returns the hit ratio as a percentage.
func (s Stats) HitPercent() float64 {
	return s.HitRatio * 100
}
