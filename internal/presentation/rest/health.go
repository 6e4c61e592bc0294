package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints for the decision engine.
type HealthHandler struct {
	logger    *slog.Logger
	service   string
	checks    map[string]ReadinessCheck
	now       func() time.Time
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. Each named check is
// run on every readiness probe.
func NewHealthHandler(service string, checks map[string]ReadinessCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		service:   service,
		checks:    checks,
		now:       time.Now,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Service   string `json:"service,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Health reports liveness with the current timestamp.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := ReadinessResponse{
		Status:  "ready",
		Service: h.service,
		Checks:  make(map[string]string, len(h.checks)),
	}
	code := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			resp.Checks[name] = "unavailable"
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	writeJSON(w, code, resp)
}
