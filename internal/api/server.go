// Package api exposes offset resolution over HTTP.
//
// Routes:
//
//	POST /v1/offset      resolve a scenario (JSON body) into coordinates
//	GET  /v1/placements  list valid placements
//	GET  /healthz        liveness probe
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/observability"
	"github.com/matzehuels/floatplace/pkg/scenario"
	"github.com/matzehuels/floatplace/pkg/service"
)

// maxBodyBytes caps request bodies; scenarios are small.
const maxBodyBytes = 64 << 10

// requestIDHeader carries the per-request ID in both directions.
const requestIDHeader = "X-Request-ID"

// Server serves the HTTP API.
type Server struct {
	runner *service.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer builds the router around runner.
func NewServer(runner *service.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/placements", s.handlePlacements)
		r.Post("/offset", s.handleOffset)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlacements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]geom.Placement{"placements": geom.Placements})
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(body) > maxBodyBytes {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes))
		return
	}

	scn, err := scenario.Decode(body, scenario.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Resolve(r.Context(), scn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Middleware
// =============================================================================

// requestID propagates or assigns a request ID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", w.Header().Get(requestIDHeader),
			"duration", duration)
	})
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: w.Header().Get(requestIDHeader),
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
