// Package server exposes the sample → layout → render pipeline over HTTP.
//
// The API is intentionally small: one endpoint renders trees on demand,
// and a snapshot store lets users persist a run and share its URL. All
// heavy lifting is delegated to [pipeline.Runner], so responses benefit
// from the same caching as the CLI.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/treeviz/pkg/buildinfo"
	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/sample"
	"github.com/matzehuels/treeviz/pkg/store"
)

// Timeouts for the HTTP server. Renders are fast, but PNG conversion
// shells out and deserves headroom.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server wires the pipeline runner and snapshot store into an HTTP API.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// New creates a server. A nil store disables the snapshot endpoints's
// persistence and is replaced with an in-memory store.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Logger: logger}
}

// Handler builds the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/render", s.handleRender)
		r.Post("/snapshots", s.handleCreateSnapshot)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Get("/snapshots/{id}.svg", s.handleGetSnapshotSVG)
	})
	return r
}

// ListenAndServe starts the server and blocks until ctx is cancelled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.Logger.Info("server listening", "addr", addr, "build", buildinfo.String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// ====================================================================
// Handlers
// ====================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// renderResponse is the JSON shape for /api/render without an explicit
// binary format.
type renderResponse struct {
	Count     int            `json:"count"`
	Seed      uint64         `json:"seed"`
	Strategy  string         `json:"strategy"`
	Data      []int          `json:"data"`
	Layout    layout.Layout  `json:"layout"`
	Conflicts []layout.Coord `json:"conflicts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, format, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch format {
	case pipeline.FormatJSON:
		s.writeJSON(w, http.StatusOK, renderResponse{
			Count:     len(result.Data),
			Seed:      opts.Seed,
			Strategy:  result.Layout.Strategy,
			Data:      result.Data,
			Layout:    result.Layout,
			Conflicts: result.Layout.Conflicts,
		})
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(result.Artifacts[format])
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
		w.Write(result.Artifacts[format])
	case pipeline.FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(result.Artifacts[format])
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write(result.Artifacts[format])
	}
}

// createSnapshotRequest mirrors the render query parameters as a body so
// snapshots can also be created from explicit data.
type createSnapshotRequest struct {
	Count    int    `json:"count,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Data     []int  `json:"data,omitempty"`
}

type createSnapshotResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := pipeline.Options{
		Count:    req.Count,
		Seed:     req.Seed,
		Strategy: req.Strategy,
		Data:     req.Data,
		Formats:  []string{pipeline.FormatJSON},
	}
	// Record the effective seed, not the request's zero value.
	if opts.Seed == 0 {
		opts.Seed = pipeline.DefaultSeed
	}
	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := store.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Count:     len(result.Data),
		Seed:      opts.Seed,
		Strategy:  result.Layout.Strategy,
		Data:      result.Data,
		Layout:    result.Layout,
	}
	if err := s.Store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}

	s.Logger.Info("snapshot created", "id", snap.ID, "nodes", len(snap.Data))
	s.writeJSON(w, http.StatusCreated, createSnapshotResponse{
		ID:  snap.ID,
		URL: "/api/snapshots/" + snap.ID,
	})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Data:     snap.Data,
		Strategy: snap.Strategy,
		Formats:  []string{pipeline.FormatSVG},
		Style:    r.URL.Query().Get("style"),
	}
	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(result.Artifacts[pipeline.FormatSVG])
}

// ====================================================================
// Request parsing and response helpers
// ====================================================================

// optionsFromQuery builds pipeline options from render query parameters.
// Unparseable counts fall back to the default, matching the CLI. Defaults
// are applied here rather than left to the pipeline so responses echo the
// parameters the run actually used.
func optionsFromQuery(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()

	opts := pipeline.Options{
		Count:    pipeline.DefaultCount,
		Seed:     pipeline.DefaultSeed,
		Strategy: q.Get("strategy"),
		Style:    q.Get("style"),
		Nodelink: q.Get("nodelink") == "true",
		Detailed: q.Get("detailed") == "true",
	}
	if raw := q.Get("count"); raw != "" {
		if n := sample.ParseCount(raw); n > 0 {
			opts.Count = sample.ClampCount(n)
		}
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return pipeline.Options{}, "", errors.Wrap(
				errors.ErrCodeInvalidInput, err, "invalid seed %q", raw)
		}
		opts.Seed = seed
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, "", err
	}
	return opts, format, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps structured error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCount,
		errors.ErrCodeInvalidStrategy, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidSnapshot:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSnapshotNotFound,
		errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}
