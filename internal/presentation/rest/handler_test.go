package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/internal/infrastructure/memory"
	"github.com/watermelon/decision-engine/internal/infrastructure/messaging"
	"github.com/watermelon/decision-engine/pkg/auth"
	"github.com/watermelon/decision-engine/pkg/observability"
	"github.com/watermelon/decision-engine/pkg/testutil"
)

type failingSupplierLog struct{}

func (failingSupplierLog) Append(context.Context, *model.SupplierRecord) (int, error) {
	return 0, errors.New("connection reset")
}

func (failingSupplierLog) List(context.Context, int) ([]*model.SupplierRecord, error) {
	return nil, errors.New("connection reset")
}

func newTestHandler(mode valueobject.ValidationMode, suppliers port.SupplierLog, authEnabled bool) *Handler {
	rng := testutil.NeutralRandom{}
	clock := testutil.FixedClock{}
	logger := observability.Discard()
	notifier := messaging.NewLogNotifier(logger)
	extractor := service.NewExtractor(mode, rng, clock)
	telemetry := usecase.Telemetry{Logger: logger}
	buyers := memory.NewBuyerLog()
	forecasts := memory.NewForecastLog()

	return NewHandler(
		usecase.NewOnboardSupplier(extractor, service.NewCreditScorer(rng), suppliers, notifier, clock, telemetry),
		usecase.NewAnalyzeChurn(extractor, buyers, notifier, clock, telemetry),
		usecase.NewForecastDemand(extractor, service.NewDemandForecaster(rng), forecasts, notifier, clock, telemetry),
		usecase.NewListProcessed(suppliers, buyers, forecasts),
		logger,
		authEnabled,
	)
}

func newTestRouter(h *Handler, jwt *auth.JWTService, limiter *RateLimiter) http.Handler {
	logger := observability.Discard()
	return NewRouter(RouterConfig{
		API:            h,
		Health:         NewHealthHandler("decision-engine", nil, logger),
		Metrics:        http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics\n")) }),
		RateLimiter:    limiter,
		JWT:            jwt,
		AllowedOrigins: []string{"https://dashboard.example.com"},
		Logger:         logger,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestOnboardSupplier(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationStrict, memory.NewSupplierLog(), false), nil, nil)

	t.Run("scores and records the supplier", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard",
			`{"supplier_name":"Green Valley Produce","amount":30000,"terms":"NET30"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[dto.SupplierResponse](t, rec)
		assert.Equal(t, 0, resp.SupplierIndex)
		assert.Equal(t, 780.0, resp.CreditScore)
		assert.Equal(t, "low", resp.RiskLevel)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, "30000", resp.InvoiceAmount)
	})

	t.Run("second supplier gets the next index", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard",
			`{"supplier_name":"Harbor Fresh","amount":"8000","terms":"NET45"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 1, decode[dto.SupplierResponse](t, rec).SupplierIndex)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard", `{"amount":-5,"terms":"NET"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[ErrorResponse](t, rec)
		assert.Equal(t, "validation failed", resp.Error)
		assert.Equal(t, "must be positive", resp.Fields["amount"])
		assert.Contains(t, resp.Fields, "terms")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard", `{"amount":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOnboardSupplier_DefaultFillAcceptsEmptyBody(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationDefaultFill, memory.NewSupplierLog(), false), nil, nil)

	rec := do(t, router, http.MethodPost, "/api/supplier/onboard", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.SupplierResponse](t, rec)
	assert.True(t, strings.HasPrefix(resp.SupplierName, "Supplier_"))
	assert.Equal(t, "NET30", resp.Terms)
}

func TestOnboardSupplier_BodyLimit(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationStrict, memory.NewSupplierLog(), false), nil, nil)
	payload := `{"supplier_name":"Green Valley Produce","amount":30000,"terms":"NET30"}`

	t.Run("body at the limit is accepted", func(t *testing.T) {
		body := payload + strings.Repeat(" ", maxBodyBytes-len(payload))
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard", body)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		body := `{"supplier_name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		rec := do(t, router, http.MethodPost, "/api/supplier/onboard", body)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "request body exceeds 1048576 bytes", decode[ErrorResponse](t, rec).Error)
	})
}

func TestOnboardSupplier_StorageFailure(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationDefaultFill, failingSupplierLog{}, false), nil, nil)

	rec := do(t, router, http.MethodPost, "/api/supplier/onboard", `{}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestAnalyzeChurn(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationStrict, memory.NewSupplierLog(), false), nil, nil)
	dormant := testutil.FixedNow.Add(-120 * 24 * time.Hour).Format(time.RFC3339)

	rec := do(t, router, http.MethodPost, "/api/buyer/churn-analysis",
		`{"id":"buyer_005","name":"Catering Service E","last_order_date":"`+dormant+`","order_frequency":0,"basket_size":0}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.ChurnResponse](t, rec)
	assert.Equal(t, 1.0, resp.ChurnProbability)
	assert.Equal(t, "high_risk", resp.RiskTier)
	assert.Equal(t, "marketing_triggered", resp.ActionTaken)
	assert.Equal(t, "discount_outreach", resp.Campaign)
}

func TestForecastDemandAndList(t *testing.T) {
	router := newTestRouter(newTestHandler(valueobject.ValidationStrict, memory.NewSupplierLog(), false), nil, nil)

	for _, body := range []string{
		`{"product_id":"PROD_001","historical_avg":100,"current_inventory":78}`,
		`{"product_id":"PROD_002","historical_avg":100,"current_inventory":150}`,
	} {
		rec := do(t, router, http.MethodPost, "/api/product/demand-forecast", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	t.Run("lists in insertion order", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/products", "")

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[dto.ForecastListResponse](t, rec)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "PROD_001", resp.Products[0].ProductID)
		assert.Equal(t, "high", resp.Products[0].InventoryRisk)
		assert.Equal(t, 80, resp.Products[0].AlertThreshold)
		assert.True(t, resp.Products[0].AlertSent)
		assert.Equal(t, "normal", resp.Products[1].InventoryRisk)
	})

	t.Run("limit keeps the most recent", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/products?limit=1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[dto.ForecastListResponse](t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "PROD_002", resp.Products[0].ProductID)
	})

	t.Run("rejects a non-numeric limit", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/products?limit=ten", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth(t *testing.T) {
	jwtService, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "decision-engine"})
	require.NoError(t, err)
	router := newTestRouter(newTestHandler(valueobject.ValidationDefaultFill, memory.NewSupplierLog(), true), jwtService, nil)

	token := func(roles ...string) string {
		tok, err := jwtService.GenerateToken("test-client", roles)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics are public", http.MethodGet, "/metrics", "", http.StatusOK},
		{"missing token", http.MethodPost, "/api/product/demand-forecast", "", http.StatusUnauthorized},
		{"garbage token", http.MethodPost, "/api/product/demand-forecast", "Bearer nope", http.StatusUnauthorized},
		{"analyst cannot submit", http.MethodPost, "/api/product/demand-forecast", token(auth.RoleAnalyst), http.StatusForbidden},
		{"operator submits", http.MethodPost, "/api/product/demand-forecast", token(auth.RoleOperator), http.StatusOK},
		{"operator cannot list", http.MethodGet, "/api/suppliers", token(auth.RoleOperator), http.StatusForbidden},
		{"analyst lists", http.MethodGet, "/api/suppliers", token(auth.RoleAnalyst), http.StatusOK},
		{"admin does both", http.MethodGet, "/api/buyers", token(auth.RoleAdmin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers []string
			if tt.auth != "" {
				headers = []string{"Authorization", tt.auth}
			}
			rec := do(t, router, tt.method, tt.path, `{"product_id":"PROD_001"}`, headers...)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler("decision-engine", map[string]ReadinessCheck{
		"database": func(context.Context) error { return nil },
	}, observability.Discard())
	h.now = func() time.Time { return testutil.FixedNow }
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	t.Run("health reports a timestamp", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[HealthResponse](t, rec)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "2026-05-04T10:30:00Z", resp.Timestamp)
	})

	t.Run("ready when checks pass", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", decode[ReadinessResponse](t, rec).Checks["database"])
	})

	t.Run("not ready when a check fails", func(t *testing.T) {
		h.checks["kafka"] = func(context.Context) error { return errors.New("no brokers") }
		rec := do(t, mux, http.MethodGet, "/readyz", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decode[ReadinessResponse](t, rec)
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["kafka"])
	})
}
