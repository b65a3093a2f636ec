package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/forecast-lookup/internal/domain"
	"github.com/couchcryptid/forecast-lookup/internal/observability"
	"github.com/couchcryptid/forecast-lookup/internal/tool"
)

// Server exposes tool invocation, health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	registry   *tool.Registry
	metrics    *observability.Metrics
	authSecret string
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1/tools invocation surface.
func NewServer(addr string, registry *tool.Registry, metrics *observability.Metrics, authSecret string, logger *slog.Logger) *Server {
	s := &Server{
		registry:   registry,
		metrics:    metrics,
		authSecret: authSecret,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/v1/tools", s.handleListTools)
	r.Post("/v1/tools/{name}", s.handleInvokeTool)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
		// Tool invocations make two sequential upstream calls, so the write
		// timeout leaves headroom over the per-call upstream timeout.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.registry.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.List()})
}

type invokeResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, handler, ok := s.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "tool not found: " + name})
		return
	}

	if def.Permission == tool.PermissionAdmin {
		if err := s.authorizeAdmin(r); err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, errAuthNotConfigured) {
				status = http.StatusForbidden
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}
	}

	params, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := handler(r.Context(), params)
	s.metrics.ToolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeToolError(w, r, name, err)
		return
	}

	s.metrics.ToolInvocations.WithLabelValues(name, "success").Inc()
	writeJSON(w, http.StatusOK, invokeResponse{Result: result})
}

// writeToolError maps tool errors to HTTP statuses: invalid request 400,
// unknown location 404, anything else is an upstream failure 502.
func (s *Server) writeToolError(w http.ResponseWriter, r *http.Request, name string, err error) {
	var notFound *domain.NotFoundError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		s.metrics.ToolInvocations.WithLabelValues(name, "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &notFound):
		s.metrics.ToolInvocations.WithLabelValues(name, "not_found").Inc()
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	default:
		s.metrics.ToolInvocations.WithLabelValues(name, "upstream_error").Inc()
		s.logger.Error("tool invocation failed",
			"tool", name,
			"request_id", r.Header.Get("X-Request-ID"),
			"error", err,
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
