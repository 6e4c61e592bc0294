package rest

import (
	"log/slog"
	"net/http"

	"github.com/watermelon/decision-engine/internal/infrastructure/config"
	"github.com/watermelon/decision-engine/pkg/auth"
)

// publicPaths bypass JWT authentication.
var publicPaths = []string{"/health", "/healthz", "/readyz", "/metrics"}

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	API         *Handler
	Health      *HealthHandler
	Metrics     http.Handler
	RateLimiter *RateLimiter
	// JWT enables bearer authentication on the API routes when non-nil.
	JWT            *auth.JWTService
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler tree with its middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	cfg.API.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	middlewares := []Middleware{
		RequestID(),
		Recovery(cfg.Logger),
		Logging(cfg.Logger),
		CORS(cfg.AllowedOrigins),
	}
	if cfg.RateLimiter != nil {
		middlewares = append(middlewares, RateLimit(cfg.RateLimiter, cfg.Logger))
	}
	if cfg.JWT != nil {
		middlewares = append(middlewares, auth.HTTPMiddleware(cfg.JWT, publicPaths))
	}
	return Chain(middlewares...)(mux)
}

// NewServer creates the HTTP server with the configured timeouts.
func NewServer(address string, handler http.Handler, cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
