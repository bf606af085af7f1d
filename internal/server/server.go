// Package server exposes the persisted snapshot over HTTP: read endpoints
// for the dashboard and a trigger endpoint for builds. Reads go through a
// short-lived cache so dashboard polling does not hammer the blob store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/maypok86/otter"

	"github.com/ficsit-ops/stationboard/internal/blob"
	"github.com/ficsit-ops/stationboard/internal/builder"
)

const defaultCacheTTL = 30 * time.Second

// Server serves the snapshot API.
type Server struct {
	coordinator *builder.Coordinator
	cache       otter.Cache[string, []byte]
	addr        string
}

// Option configures a Server.
type Option func(*options)

type options struct {
	cacheTTL time.Duration
}

// WithCacheTTL overrides how long snapshot reads are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// New creates a server around a build coordinator.
func New(addr string, coordinator *builder.Coordinator, opts ...Option) (*Server, error) {
	o := options{cacheTTL: defaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := otter.MustBuilder[string, []byte](64).
		WithTTL(o.cacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build response cache: %w", err)
	}

	return &Server{
		coordinator: coordinator,
		cache:       cache,
		addr:        addr,
	}, nil
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/saveDetails", s.handleSaveDetails)
	mux.HandleFunc("GET /api/buildInfo", s.handleBuildInfo)
	mux.HandleFunc("POST /api/build", s.handleBuild)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving API on %s\n", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func (s *Server) handleSaveDetails(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "saveDetails", s.coordinator.SaveDetailsJSON)
}

func (s *Server) handleBuildInfo(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "buildInfo", s.coordinator.BuildInfoJSON)
}

// serveCached returns the cached payload when fresh, otherwise reads through
// to the store.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string, read func(context.Context) ([]byte, error)) {
	if data, ok := s.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	data, err := read(r.Context())
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshot built yet")
			return
		}
		log.Printf("Warning: failed to read %s: %v\n", key, err)
		writeError(w, http.StatusBadGateway, "store read failed")
		return
	}

	s.cache.Set(key, data)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	result, err := s.coordinator.RunBuild(r.Context(), force)
	if err != nil {
		log.Printf("Warning: build run %s failed: %v\n", result.RunID, err)
	}

	// Even a skipped run may have backfilled build info.
	s.cache.Delete("saveDetails")
	s.cache.Delete("buildInfo")

	status := http.StatusOK
	if result.Status == builder.StatusFailed {
		status = http.StatusInternalServerError
	}
	body, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	writeJSON(w, status, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	writeJSON(w, status, body)
}
