package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/costcache/pkg/cache"
	"github.com/dmitrymomot/costcache/pkg/simulator"
)

type handlers struct {
	sim  *simulator.Simulator
	log  *slog.Logger
	bind func(r *http.Request, v any) error
}

// CreateFileRequest is the body of POST /files.
type CreateFileRequest struct {
	ID      string `json:"id"`
	SizeKiB *int64 `json:"size_kib"`
}

// CacheView is the body of GET /cache.
type CacheView struct {
	Capacity int           `json:"capacity"`
	Size     int           `json:"size"`
	Entries  []cache.Entry `json:"entries"`
}

// StatsView is the body of GET /stats.
type StatsView struct {
	cache.Stats
	Capacity   int     `json:"capacity"`
	HitPercent float64 `json:"hit_percent"`
}

func (h *handlers) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.sim.ListFiles(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, http.StatusOK, files)
}

func (h *handlers) createFile(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if err := h.bind(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if req.SizeKiB == nil {
		respondError(w, r, h.log, fmt.Errorf("%w: size_kib", ErrMissingField))
		return
	}

	f, err := h.sim.CreateFile(r.Context(), req.ID, *req.SizeKiB)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, http.StatusCreated, f)
}

func (h *handlers) accessFile(w http.ResponseWriter, r *http.Request) {
	res, err := h.sim.Access(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *handlers) cacheEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.sim.Entries()
	respond(w, http.StatusOK, CacheView{
		Capacity: h.sim.Capacity(),
		Size:     len(entries),
		Entries:  entries,
	})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	st := h.sim.Stats()
	respond(w, http.StatusOK, StatsView{
		Stats:      st,
		Capacity:   h.sim.Capacity(),
		HitPercent: st.HitPercent(),
	})
}
