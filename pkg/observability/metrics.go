package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	// Registry defaults to a fresh registry so repeated initialisation in
	// tests does not collide on the global one.
	Registry *prometheus.Registry
}

// InitMetrics wires an OpenTelemetry MeterProvider to a Prometheus exporter
// and registers it as the global provider.
// Returns the provider and the /metrics handler.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(exporter)}
	if cfg.ServiceName != "" {
		opts = append(opts, sdkmetric.WithResource(resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
		)))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}
