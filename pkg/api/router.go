package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/costcache/pkg/binder"
	"github.com/dmitrymomot/costcache/pkg/httpserver"
	"github.com/dmitrymomot/costcache/pkg/logger"
	"github.com/dmitrymomot/costcache/pkg/requestid"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

// NewRouter exposes sim over HTTP:
//
//	GET  /files              list backing files
//	POST /files              create a file {"id": "A", "size_kib": 10}
//	POST /files/{id}/access  access a file through the cache
//	GET  /cache              cached entries in insertion order
//	GET  /stats              hit/miss counters
//	GET  /health/live        liveness probe
//	GET  /health/ready       readiness probe, pings the backing store
//	GET  /metrics            Prometheus metrics
func NewRouter(sim *simulator.Simulator, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	h := &handlers{sim: sim, log: log, bind: binder.JSON()}

	reg := prometheus.NewRegistry()
	reg.MustRegister(newCacheCollector(sim))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requestLogger(log))
	r.Use(instrument(reg))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, log, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, log, ErrMethodNotAllowed)
	})

	r.Route("/files", func(r chi.Router) {
		r.Get("/", h.listFiles)
		r.Post("/", h.createFile)
		r.Post("/{id}/access", h.accessFile)
	})
	r.Get("/cache", h.cacheEntries)
	r.Get("/stats", h.stats)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", httpserver.HealthCheckHandler(log))
		r.Get("/ready", httpserver.HealthCheckHandler(log, sim.Ping))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}
