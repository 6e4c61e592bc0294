package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/metric"

	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/infrastructure/clock"
	"github.com/watermelon/decision-engine/internal/infrastructure/config"
	infrakafka "github.com/watermelon/decision-engine/internal/infrastructure/kafka"
	"github.com/watermelon/decision-engine/internal/infrastructure/memory"
	"github.com/watermelon/decision-engine/internal/infrastructure/messaging"
	infrapostgres "github.com/watermelon/decision-engine/internal/infrastructure/postgres"
	"github.com/watermelon/decision-engine/internal/infrastructure/random"
	grpcpresentation "github.com/watermelon/decision-engine/internal/presentation/grpc"
	"github.com/watermelon/decision-engine/internal/presentation/rest"
	"github.com/watermelon/decision-engine/pkg/auth"
	"github.com/watermelon/decision-engine/pkg/kafka"
	"github.com/watermelon/decision-engine/pkg/postgres"
)

// app holds the wired use cases and the resources they own.
type app struct {
	onboardSupplier *usecase.OnboardSupplier
	analyzeChurn    *usecase.AnalyzeChurn
	forecastDemand  *usecase.ForecastDemand
	listProcessed   *usecase.ListProcessed

	jwt      *auth.JWTService
	pool     *pgxpool.Pool
	producer *kafka.Producer
	logger   *slog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, meter metric.Meter) (*app, error) {
	a := &app{logger: logger}

	instruments, err := usecase.NewInstruments(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}
	telemetry := usecase.Telemetry{
		Logger:        logger,
		Instruments:   instruments,
		NotifyTimeout: cfg.Engine.NotifyTimeout,
	}

	rng := random.NewSource(cfg.Engine.RandomSeed)
	logger.Info("jitter source seeded", "seed", rng.Seed())
	clk := clock.System{}

	suppliers, buyers, forecasts, err := a.decisionLogs(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	notifier := a.notifier(cfg, clk)

	if cfg.Auth.JWTSecret != "" || cfg.Auth.JWTPublicKeyFile != "" {
		a.jwt, err = newJWTService(cfg.Auth)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("JWT authentication enabled", "issuer", cfg.Auth.JWTIssuer)
	} else {
		logger.Warn("JWT authentication disabled, set JWT_SECRET or JWT_PUBLIC_KEY_FILE to enable")
	}

	extractor := service.NewExtractor(cfg.Engine.ValidationMode, rng, clk)
	a.onboardSupplier = usecase.NewOnboardSupplier(extractor, service.NewCreditScorer(rng), suppliers, notifier, clk, telemetry)
	a.analyzeChurn = usecase.NewAnalyzeChurn(extractor, buyers, notifier, clk, telemetry)
	a.forecastDemand = usecase.NewForecastDemand(extractor, service.NewDemandForecaster(rng), forecasts, notifier, clk, telemetry)
	a.listProcessed = usecase.NewListProcessed(suppliers, buyers, forecasts)

	return a, nil
}

func (a *app) decisionLogs(ctx context.Context, cfg *config.Config) (port.SupplierLog, port.BuyerLog, port.ForecastLog, error) {
	if cfg.Engine.LogBackend != config.BackendPostgres {
		retention := memory.WithRetention(cfg.Engine.LogRetention)
		return memory.NewSupplierLog(retention), memory.NewBuyerLog(retention), memory.NewForecastLog(retention), nil
	}

	if err := postgres.RunMigrations(cfg.Database.DSN(), infrapostgres.Migrations, infrapostgres.MigrationsDir); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	return infrapostgres.NewSupplierLog(pool), infrapostgres.NewBuyerLog(pool), infrapostgres.NewForecastLog(pool), nil
}

func (a *app) notifier(cfg *config.Config, clk port.Clock) port.Notifier {
	logNotifier := messaging.NewLogNotifier(a.logger)
	if cfg.Engine.NotifierBackend != config.BackendKafka {
		return logNotifier
	}

	a.producer = kafka.NewProducer(cfg.Kafka)
	a.logger.Info("publishing notifications to kafka", "brokers", cfg.Kafka.Brokers)
	return messaging.Fanout{
		logNotifier,
		infrakafka.NewNotifier(a.producer, infrakafka.DefaultTopics, clk, a.logger),
	}
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
	}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	return svc, nil
}

func (a *app) grpcUseCases() grpcpresentation.UseCases {
	return grpcpresentation.UseCases{
		OnboardSupplier: a.onboardSupplier,
		AnalyzeChurn:    a.analyzeChurn,
		ForecastDemand:  a.forecastDemand,
		ListProcessed:   a.listProcessed,
	}
}

func (a *app) restHandler(logger *slog.Logger) *rest.Handler {
	return rest.NewHandler(a.onboardSupplier, a.analyzeChurn, a.forecastDemand, a.listProcessed, logger, a.jwt != nil)
}

func (a *app) readinessChecks() map[string]rest.ReadinessCheck {
	checks := map[string]rest.ReadinessCheck{}
	if a.pool != nil {
		checks["database"] = func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, a.pool)
		}
	}
	return checks
}

// Close releases the database pool and kafka producer.
func (a *app) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("failed to close kafka producer", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
