package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/pkg/kafka"
	"github.com/watermelon/decision-engine/pkg/postgres"
)

// Notifier and decision log backends.
const (
	BackendLog      = "log"
	BackendKafka    = "kafka"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the decision engine.
type Config struct {
	ServiceName string
	Environment string
	Log         LogConfig
	HTTP        HTTPConfig
	GRPC        GRPCConfig
	Engine      EngineConfig
	Database    postgres.Config
	Kafka       kafka.Config
	Telemetry   TelemetryConfig
	Auth        AuthConfig
	// ShutdownTimeout bounds graceful shutdown of both servers.
	ShutdownTimeout time.Duration
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// HTTPConfig holds REST server settings.
type HTTPConfig struct {
	CORSAllowedOrigins []string
	Port               int
	RateLimitRPS       float64
	RateLimitBurst     int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
}

// GRPCConfig holds gRPC server settings. TLS is enabled when both the
// certificate and key are set; a client CA additionally enables mTLS.
type GRPCConfig struct {
	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
	Port            int
	Reflection      bool
}

// TLSEnabled reports whether the gRPC server should serve TLS.
func (c GRPCConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// EngineConfig holds the decision pipeline settings.
type EngineConfig struct {
	ValidationMode  valueobject.ValidationMode
	NotifierBackend string
	LogBackend      string
	// RandomSeed of 0 seeds the jitter source from entropy.
	RandomSeed    uint64
	NotifyTimeout time.Duration
	// LogRetention caps records per in-memory log; 0 keeps everything.
	LogRetention int
}

// TelemetryConfig holds OpenTelemetry exporter settings. Tracing is
// disabled when OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
	SampleRatio  float64
}

// AuthConfig holds JWT settings. Authentication is disabled when neither a
// secret nor a public key is configured.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	JWTIssuer        string
}

// Load reads configuration from environment variables with defaults and
// validates the result.
func Load() (*Config, error) {
	mode, err := valueobject.ValidationModeFromString(getEnv("VALIDATION_MODE", "default_fill"))
	if err != nil {
		return nil, fmt.Errorf("VALIDATION_MODE: %w", err)
	}

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "decision-engine"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		HTTP: HTTPConfig{
			Port:               getEnvInt("HTTP_PORT", 5000),
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 100),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 200),
			ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:        getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		},
		GRPC: GRPCConfig{
			Port:            getEnvInt("GRPC_PORT", 9090),
			TLSCertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			TLSClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
			Reflection:      getEnvBool("GRPC_REFLECTION", true),
		},
		Engine: EngineConfig{
			ValidationMode:  mode,
			NotifierBackend: getEnv("NOTIFIER_BACKEND", BackendLog),
			LogBackend:      getEnv("DECISION_LOG_BACKEND", BackendMemory),
			RandomSeed:      getEnvUint64("RANDOM_SEED", 0),
			NotifyTimeout:   getEnvDuration("NOTIFY_TIMEOUT", 2*time.Second),
			LogRetention:    getEnvInt("DECISION_LOG_RETENTION", 10000),
		},
		Database: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "engine"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "decisions"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 1)),
		},
		Kafka: kafka.Config{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "decision-engine"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			WriteTimeout:  getEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			JWTIssuer:        getEnv("JWT_ISSUER", "decision-engine"),
		},
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	var errs []error

	if err := validPort("HTTP_PORT", c.HTTP.Port); err != nil {
		errs = append(errs, err)
	}
	if err := validPort("GRPC_PORT", c.GRPC.Port); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.Port == c.GRPC.Port {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ"))
	}
	if c.HTTP.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must not be negative"))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}

	switch c.Engine.NotifierBackend {
	case BackendLog:
	case BackendKafka:
		if err := c.Kafka.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("NOTIFIER_BACKEND must be %q or %q, got %q", BackendLog, BackendKafka, c.Engine.NotifierBackend))
	}

	switch c.Engine.LogBackend {
	case BackendMemory:
		if c.Engine.LogRetention < 0 {
			errs = append(errs, fmt.Errorf("DECISION_LOG_RETENTION must not be negative, got %d", c.Engine.LogRetention))
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			errs = append(errs, fmt.Errorf("DB_PASSWORD is required for the postgres decision log"))
		}
	default:
		errs = append(errs, fmt.Errorf("DECISION_LOG_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Engine.LogBackend))
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_TRACES_SAMPLE_RATIO must be between 0 and 1"))
	}

	return errors.Join(errs...)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPC.Port)
}

func validPort(name string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseUint(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
