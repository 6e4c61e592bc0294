package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/pkg/auth"
)

const maxBodyBytes = 1 << 20

// Handler serves the decision pipelines over JSON/HTTP.
type Handler struct {
	onboardSupplier *usecase.OnboardSupplier
	analyzeChurn    *usecase.AnalyzeChurn
	forecastDemand  *usecase.ForecastDemand
	listProcessed   *usecase.ListProcessed
	logger          *slog.Logger
	authEnabled     bool
}

// NewHandler creates a Handler. When authEnabled is false no role checks
// are made.
func NewHandler(
	onboardSupplier *usecase.OnboardSupplier,
	analyzeChurn *usecase.AnalyzeChurn,
	forecastDemand *usecase.ForecastDemand,
	listProcessed *usecase.ListProcessed,
	logger *slog.Logger,
	authEnabled bool,
) *Handler {
	return &Handler{
		onboardSupplier: onboardSupplier,
		analyzeChurn:    analyzeChurn,
		forecastDemand:  forecastDemand,
		listProcessed:   listProcessed,
		logger:          logger,
		authEnabled:     authEnabled,
	}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/supplier/onboard", h.requireRole(h.OnboardSupplier, auth.RoleAdmin, auth.RoleOperator))
	mux.Handle("POST /api/buyer/churn-analysis", h.requireRole(h.AnalyzeChurn, auth.RoleAdmin, auth.RoleOperator))
	mux.Handle("POST /api/product/demand-forecast", h.requireRole(h.ForecastDemand, auth.RoleAdmin, auth.RoleOperator))
	mux.Handle("GET /api/suppliers", h.requireRole(h.ListSuppliers, auth.RoleAdmin, auth.RoleAnalyst))
	mux.Handle("GET /api/buyers", h.requireRole(h.ListBuyers, auth.RoleAdmin, auth.RoleAnalyst))
	mux.Handle("GET /api/products", h.requireRole(h.ListProducts, auth.RoleAdmin, auth.RoleAnalyst))
}

func (h *Handler) requireRole(next http.HandlerFunc, roles ...string) http.Handler {
	if !h.authEnabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, role := range roles {
			if claims.HasRole(role) {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, "insufficient permissions")
	})
}

// OnboardSupplier handles POST /api/supplier/onboard.
func (h *Handler) OnboardSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.OnboardSupplierRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	resp, err := h.onboardSupplier.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AnalyzeChurn handles POST /api/buyer/churn-analysis.
func (h *Handler) AnalyzeChurn(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeChurnRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	resp, err := h.analyzeChurn.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ForecastDemand handles POST /api/product/demand-forecast.
func (h *Handler) ForecastDemand(w http.ResponseWriter, r *http.Request) {
	var req dto.ForecastDemandRequest
	if err := readJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	resp, err := h.forecastDemand.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.listProcessed.Suppliers(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListBuyers(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.listProcessed.Buyers(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.listProcessed.Products(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleError writes 400 for validation failures and a generic 500 for
// everything else.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Fields: validationFields(err),
		})
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func listRequest(r *http.Request) (dto.ListRequest, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return dto.ListRequest{}, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return dto.ListRequest{}, fmt.Errorf("invalid limit %q", raw)
	}
	return dto.ListRequest{Limit: limit}, nil
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// validationFields flattens joined validation errors into field -> reason.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var walk func(error)
	walk = func(err error) {
		if ve, ok := err.(*model.ValidationError); ok {
			fields[ve.Field] = ve.Reason
			return
		}
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// readJSON reads and decodes a JSON request body, keeping numbers as
// json.Number. An empty body decodes to the zero request.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeBodyError maps a readJSON failure to 413 for oversized bodies and 400
// otherwise.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// writeJSON marshals the value as JSON and writes it to the response.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, ErrorResponse{Error: msg})
}
