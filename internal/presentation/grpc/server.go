package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/watermelon/decision-engine/internal/infrastructure/config"
	"github.com/watermelon/decision-engine/pkg/auth"
	"github.com/watermelon/decision-engine/pkg/tlsutil"
)

// Server wraps the gRPC server with decision engine handlers.
type Server struct {
	address    string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *slog.Logger
}

// NewServer creates a new gRPC server for the decision engine. A nil
// jwtService disables authentication.
func NewServer(handler DecisionEngineServiceServer, cfg config.GRPCConfig, address string, logger *slog.Logger, jwtService *auth.JWTService) (*Server, error) {
	var serverOpts []grpc.ServerOption
	if jwtService != nil {
		authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	}

	if cfg.TLSEnabled() {
		creds, err := tlsutil.ServerTLSConfig(cfg.TLSCertFile, cfg.TLSKeyFile, cfg.TLSClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", cfg.TLSCertFile, "mtls", cfg.TLSClientCAFile != "")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	RegisterDecisionEngineServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:    address,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}, nil
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve serves gRPC requests on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting",
		slog.String("address", listener.Addr().String()),
	)
	return s.grpcServer.Serve(listener)
}

// Stop marks the service as not serving and gracefully stops the server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
