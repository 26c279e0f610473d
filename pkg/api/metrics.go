package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/costcache/pkg/simulator"
)

const namespace = "costcache"

// cacheCollector exports the simulator counters at scrape time.
type cacheCollector struct {
	sim *simulator.Simulator

	requests  *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	totalCost *prometheus.Desc
	entries   *prometheus.Desc
	capacity  *prometheus.Desc
}

func newCacheCollector(sim *simulator.Simulator) *cacheCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", name), help, nil, nil)
	}
	return &cacheCollector{
		sim:       sim,
		requests:  desc("requests_total", "Cache accesses resolved to an existing file."),
		hits:      desc("hits_total", "Accesses served from the cache."),
		misses:    desc("misses_total", "Accesses that admitted a file."),
		evictions: desc("evictions_total", "Entries evicted to make room."),
		totalCost: desc("miss_cost_kib_total", "Sum of file sizes in KiB paid on misses."),
		entries:   desc("entries", "Entries currently cached."),
		capacity:  desc("capacity", "Maximum number of cached entries."),
	}
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.totalCost
	ch <- c.entries
	ch <- c.capacity
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.sim.Stats()
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(st.Requests))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(st.Evictions))
	ch <- prometheus.MustNewConstMetric(c.totalCost, prometheus.CounterValue, float64(st.TotalCost))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(len(c.sim.Entries())))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.sim.Capacity()))
}

// instrument counts requests by route pattern, method and status.
func instrument(reg prometheus.Registerer) func(http.Handler) http.Handler {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})
	reg.MustRegister(requests)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		})
	}
}
