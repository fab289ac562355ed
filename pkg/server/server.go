// Package server serves a galaxy profile's documents over HTTP.
//
// Every request renders from the loaded profile config with cached live
// GitHub data, so a README can embed the images directly:
//
//	GET /healthz                 liveness and version
//	GET /                        artifact index (JSON)
//	GET /{artifact}.svg          e.g. /stats-card.svg
//	GET /{artifact}.png          PNG preview
//
// Append ?demo=1 to render with demo data instead of live data.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/galaxyprofile/pkg/buildinfo"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/pipeline"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
)

// Defaults for Options.
const (
	DefaultAddr    = "127.0.0.1:8080"
	DefaultMaxAge  = 30 * time.Minute
	requestTimeout = 60 * time.Second
	shutdownGrace  = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr     string
	Config   *profile.Config
	Runner   *pipeline.Runner
	Demo     bool          // always serve demo data
	MaxAge   time.Duration // Cache-Control max-age
	PNGScale float64
	Logger   *log.Logger
}

// Server renders artifacts on request.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server. Config and Runner are required.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server needs a profile config")
	}
	if opts.Runner == nil {
		return nil, errors.Internal("server needs a pipeline runner")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultMaxAge
	}
	if opts.Logger == nil {
		opts.Logger = opts.Runner.Logger
	}

	s := &Server{opts: opts, logger: opts.Logger}
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/{file}", s.handleArtifact)
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.opts.Addr }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving galaxy profile", "addr", "http://"+s.opts.Addr, "user", s.opts.Config.Username)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type indexEntry struct {
	Name string `json:"name"`
	SVG  string `json:"svg"`
	PNG  string `json:"png"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(pipeline.Artifacts()))
	for _, a := range pipeline.Artifacts() {
		entries = append(entries, indexEntry{
			Name: string(a),
			SVG:  "/" + a.Filename(pipeline.FormatSVG),
			PNG:  "/" + a.Filename(pipeline.FormatPNG),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  s.opts.Config.Username,
		"artifacts": entries,
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	format := strings.TrimPrefix(ext, ".")
	if format != pipeline.FormatSVG && format != pipeline.FormatPNG {
		s.fail(w, r, errors.New(errors.ErrCodeNotFound, "unknown file %q", file))
		return
	}
	a, err := pipeline.ParseArtifact(strings.TrimSuffix(file, ext))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	opts := pipeline.Options{Demo: s.opts.Demo || isTrue(r.URL.Query().Get("demo")), Logger: loggerFrom(ctx, s.logger)}
	data, err := s.opts.Runner.Data(ctx, s.opts.Config, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	in := render.Input{Config: s.opts.Config, Stats: data.Stats, Languages: data.Languages}
	doc, hit, err := s.opts.Runner.Render(ctx, in, a, format, s.opts.PNGScale)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	h := w.Header()
	if format == pipeline.FormatPNG {
		h.Set("Content-Type", "image/png")
	} else {
		h.Set("Content-Type", "image/svg+xml; charset=utf-8")
	}
	if data.Degraded {
		h.Set("Cache-Control", "no-cache") // fallback data is never cacheable
	} else {
		h.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(s.opts.MaxAge.Seconds())))
	}
	if hit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		loggerFrom(r.Context(), s.logger).Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error":      errors.UserMessage(err),
		"code":       string(errors.GetCode(err)),
		"request_id": RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// RequestIDHeader carries the request id in responses.
const RequestIDHeader = "X-Request-ID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		ctx = context.WithValue(ctx, loggerKey, s.logger.With("req", id[:8]))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		loggerFrom(r.Context(), s.logger).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}
