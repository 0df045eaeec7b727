package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/williamokano/s3_uploader/pkg/metrics"
	"github.com/williamokano/s3_uploader/pkg/uploader"
)

// Dispatcher is the part of uploader.Dispatcher the hook server drives
type Dispatcher interface {
	OnImageSaved(ctx context.Context, event uploader.ImageSavedEvent)
	TestConnection(ctx context.Context) string
}

// Server receives the host's image saved hook over HTTP
type Server struct {
	dispatcher Dispatcher
	sem        *semaphore.Weighted
	logger     zerolog.Logger
}

// New creates a hook server dispatching at most maxConcurrent events at a time
func New(dispatcher Dispatcher, maxConcurrent int, logger zerolog.Logger) *Server {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Server{
		dispatcher: dispatcher,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
		logger:     logger,
	}
}

// Routes builds the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/image-saved", s.handleImageSaved)
		r.Post("/test-connection", s.handleTestConnection)
	})

	return r
}

// HTTPServer wraps the routes in an http.Server. There is no write timeout:
// the response is only written once the upload finished.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) handleImageSaved(w http.ResponseWriter, r *http.Request) {
	var event uploader.ImageSavedEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(event.Filename) == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	// Uploads run one after another in save order unless configured otherwise
	if err := s.sem.Acquire(r.Context(), 1); err != nil {
		s.logger.Warn().Err(err).Str("file", event.Filename).Msg("request cancelled before upload started")
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	defer s.sem.Release(1)

	// The host may hang up once the hook fired; the upload still runs to the end
	s.dispatcher.OnImageSaved(context.WithoutCancel(r.Context()), event)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	msg := s.dispatcher.TestConnection(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
