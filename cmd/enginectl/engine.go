package main

import (
	"context"
	"fmt"
	"log/slog"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/internal/infrastructure/memory"
	"github.com/watermelon/decision-engine/internal/infrastructure/messaging"
	grpcpresentation "github.com/watermelon/decision-engine/internal/presentation/grpc"
	"github.com/watermelon/decision-engine/pkg/tlsutil"
)

// Engine runs the three decision pipelines, in process or remotely.
type Engine interface {
	OnboardSupplier(ctx context.Context, req dto.OnboardSupplierRequest) (dto.SupplierResponse, error)
	AnalyzeChurn(ctx context.Context, req dto.AnalyzeChurnRequest) (dto.ChurnResponse, error)
	ForecastDemand(ctx context.Context, req dto.ForecastDemandRequest) (dto.ForecastResponse, error)
}

// localEngine wires the use cases over in-memory logs and the log notifier.
type localEngine struct {
	onboardSupplier *usecase.OnboardSupplier
	analyzeChurn    *usecase.AnalyzeChurn
	forecastDemand  *usecase.ForecastDemand
}

func newLocalEngine(mode valueobject.ValidationMode, rng port.RandomSource, clock port.Clock, logger *slog.Logger) *localEngine {
	notifier := messaging.NewLogNotifier(logger)
	extractor := service.NewExtractor(mode, rng, clock)
	telemetry := usecase.Telemetry{Logger: logger}

	return &localEngine{
		onboardSupplier: usecase.NewOnboardSupplier(extractor, service.NewCreditScorer(rng), memory.NewSupplierLog(), notifier, clock, telemetry),
		analyzeChurn:    usecase.NewAnalyzeChurn(extractor, memory.NewBuyerLog(), notifier, clock, telemetry),
		forecastDemand:  usecase.NewForecastDemand(extractor, service.NewDemandForecaster(rng), memory.NewForecastLog(), notifier, clock, telemetry),
	}
}

func (e *localEngine) OnboardSupplier(ctx context.Context, req dto.OnboardSupplierRequest) (dto.SupplierResponse, error) {
	return e.onboardSupplier.Execute(ctx, req)
}

func (e *localEngine) AnalyzeChurn(ctx context.Context, req dto.AnalyzeChurnRequest) (dto.ChurnResponse, error) {
	return e.analyzeChurn.Execute(ctx, req)
}

func (e *localEngine) ForecastDemand(ctx context.Context, req dto.ForecastDemandRequest) (dto.ForecastResponse, error) {
	return e.forecastDemand.Execute(ctx, req)
}

// remoteEngine calls a running engined over gRPC with the JSON codec.
type remoteEngine struct {
	conn  *grpclib.ClientConn
	token string
}

// remoteOptions configures the gRPC client. Setting any TLS file turns on
// TLS without --tls.
type remoteOptions struct {
	Target string
	Token  string
	UseTLS bool
	TLS    tlsutil.ClientOptions
}

func dialRemote(opts remoteOptions) (*remoteEngine, error) {
	creds := insecure.NewCredentials()
	if opts.UseTLS || opts.TLS.Configured() {
		tlsCreds, err := tlsutil.ClientTLSConfig(opts.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS config: %w", err)
		}
		creds = tlsCreds
	}

	conn, err := grpclib.NewClient(opts.Target,
		grpclib.WithTransportCredentials(creds),
		grpclib.WithDefaultCallOptions(grpclib.CallContentSubtype(grpcpresentation.JSONCodec{}.Name())),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Target, err)
	}
	return &remoteEngine{conn: conn, token: opts.Token}, nil
}

func (e *remoteEngine) invoke(ctx context.Context, method string, req, resp any) error {
	if e.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+e.token)
	}
	return e.conn.Invoke(ctx, method, req, resp)
}

func (e *remoteEngine) OnboardSupplier(ctx context.Context, req dto.OnboardSupplierRequest) (dto.SupplierResponse, error) {
	var resp dto.SupplierResponse
	err := e.invoke(ctx, grpcpresentation.MethodOnboardSupplier, &req, &resp)
	return resp, err
}

func (e *remoteEngine) AnalyzeChurn(ctx context.Context, req dto.AnalyzeChurnRequest) (dto.ChurnResponse, error) {
	var resp dto.ChurnResponse
	err := e.invoke(ctx, grpcpresentation.MethodAnalyzeChurn, &req, &resp)
	return resp, err
}

func (e *remoteEngine) ForecastDemand(ctx context.Context, req dto.ForecastDemandRequest) (dto.ForecastResponse, error) {
	var resp dto.ForecastResponse
	err := e.invoke(ctx, grpcpresentation.MethodForecastDemand, &req, &resp)
	return resp, err
}

func (e *remoteEngine) Close() error {
	return e.conn.Close()
}
