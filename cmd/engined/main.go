package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/watermelon/decision-engine/internal/infrastructure/config"
	grpcpresentation "github.com/watermelon/decision-engine/internal/presentation/grpc"
	"github.com/watermelon/decision-engine/internal/presentation/rest"
	"github.com/watermelon/decision-engine/pkg/observability"
)

const serviceVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("decision-engine exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	logger.Info("starting decision-engine",
		"http_port", cfg.HTTP.Port,
		"grpc_port", cfg.GRPC.Port,
		"validation_mode", cfg.Engine.ValidationMode.String(),
		"notifier_backend", cfg.Engine.NotifierBackend,
		"decision_log_backend", cfg.Engine.LogBackend,
	)

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: serviceVersion,
			Endpoint:       cfg.Telemetry.OTLPEndpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRatio:    cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracer(shutdownCtx)
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	app, err := newApp(ctx, cfg, logger, meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return err
	}
	defer app.Close()

	grpcHandler := grpcpresentation.NewDecisionEngineHandler(app.grpcUseCases(), logger, app.jwt != nil)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, cfg.GRPC, cfg.GRPCAddress(), logger, app.jwt)
	if err != nil {
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}

	limiter := rest.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	router := rest.NewRouter(rest.RouterConfig{
		API:            app.restHandler(logger),
		Health:         rest.NewHealthHandler(cfg.ServiceName, app.readinessChecks(), logger),
		Metrics:        metricsHandler,
		RateLimiter:    limiter,
		JWT:            app.jwt,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		Logger:         logger,
	})
	httpServer := rest.NewServer(cfg.HTTPAddress(), router, cfg.HTTP)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		limiter.Cleanup(gctx, 3*time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down decision-engine")

		grpcServer.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	})

	logger.Info("decision-engine started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("decision-engine stopped")
	return nil
}
