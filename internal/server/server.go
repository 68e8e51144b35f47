// Package server exposes the cached pool collection over a read-only
// HTTP API. The handlers never mutate anything; they only surface the
// stored collection and its availability state.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/klabast/schwimmzeiten/internal/logger"
	"github.com/klabast/schwimmzeiten/internal/storage"
)

// Server serves the read-only query API.
type Server struct {
	store *storage.Store
}

// New creates a server over the given collection store.
func New(store *storage.Store) *Server {
	return &Server{store: store}
}

// Routes builds the router.
//
//	GET /healthz            liveness probe
//	GET /api/pools          full collection
//	GET /api/pools/{slug}   single pool by name slug
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/pools", s.handleListPools)
	r.Get("/api/pools/{slug}", s.handleGetPool)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPools returns the whole collection. An absent collection is
// a temporary condition (the scraper has not run yet); a malformed one
// is a data error.
func (s *Server) handleListPools(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.Load()
	if err != nil {
		s.writeLoadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	recs, err := s.store.Load()
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	for _, rec := range recs {
		if Slug(rec.Name) == slug {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "pool not found")
}

func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable")
	case errors.Is(err, storage.ErrCorrupted):
		logger.Error("collection failed shape check", "error", err)
		writeError(w, http.StatusInternalServerError, "data corrupted")
	default:
		logger.Error("collection read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// Slug derives the URL identifier for a pool name: lowercased, with
// separator runs collapsed to single dashes and umlauts transliterated.
func Slug(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	)
	lower = replacer.Replace(lower)

	var b strings.Builder
	lastDash := true
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
