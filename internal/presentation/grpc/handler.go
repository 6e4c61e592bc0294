package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/pkg/auth"
)

// Compile-time assertion that DecisionEngineHandler implements DecisionEngineServiceServer.
var _ DecisionEngineServiceServer = (*DecisionEngineHandler)(nil)

// UseCases bundles the application use cases served over gRPC.
type UseCases struct {
	OnboardSupplier *usecase.OnboardSupplier
	AnalyzeChurn    *usecase.AnalyzeChurn
	ForecastDemand  *usecase.ForecastDemand
	ListProcessed   *usecase.ListProcessed
}

// DecisionEngineHandler implements the gRPC DecisionEngineServiceServer interface.
type DecisionEngineHandler struct {
	UnimplementedDecisionEngineServiceServer
	useCases    UseCases
	logger      *slog.Logger
	authEnabled bool
}

// NewDecisionEngineHandler creates a new gRPC handler. When authEnabled is
// false no role checks are made.
func NewDecisionEngineHandler(useCases UseCases, logger *slog.Logger, authEnabled bool) *DecisionEngineHandler {
	return &DecisionEngineHandler{
		useCases:    useCases,
		logger:      logger,
		authEnabled: authEnabled,
	}
}

// requireRole checks that the caller has at least one of the given roles.
func (h *DecisionEngineHandler) requireRole(ctx context.Context, roles ...string) error {
	if !h.authEnabled {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// OnboardSupplier scores a supplier invoice.
func (h *DecisionEngineHandler) OnboardSupplier(ctx context.Context, req *dto.OnboardSupplierRequest) (*dto.SupplierResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.useCases.OnboardSupplier.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "onboard supplier", err)
	}
	return &resp, nil
}

// AnalyzeChurn scores a buyer's churn risk.
func (h *DecisionEngineHandler) AnalyzeChurn(ctx context.Context, req *dto.AnalyzeChurnRequest) (*dto.ChurnResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.useCases.AnalyzeChurn.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "analyze churn", err)
	}
	return &resp, nil
}

// ForecastDemand forecasts a product's demand.
func (h *DecisionEngineHandler) ForecastDemand(ctx context.Context, req *dto.ForecastDemandRequest) (*dto.ForecastResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.useCases.ForecastDemand.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "forecast demand", err)
	}
	return &resp, nil
}

func (h *DecisionEngineHandler) ListSuppliers(ctx context.Context, req *dto.ListRequest) (*dto.SupplierListResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst); err != nil {
		return nil, err
	}
	resp, err := h.useCases.ListProcessed.Suppliers(ctx, listRequest(req))
	if err != nil {
		return nil, h.toStatus(ctx, "list suppliers", err)
	}
	return &resp, nil
}

func (h *DecisionEngineHandler) ListBuyers(ctx context.Context, req *dto.ListRequest) (*dto.ChurnListResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst); err != nil {
		return nil, err
	}
	resp, err := h.useCases.ListProcessed.Buyers(ctx, listRequest(req))
	if err != nil {
		return nil, h.toStatus(ctx, "list buyers", err)
	}
	return &resp, nil
}

func (h *DecisionEngineHandler) ListProducts(ctx context.Context, req *dto.ListRequest) (*dto.ForecastListResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst); err != nil {
		return nil, err
	}
	resp, err := h.useCases.ListProcessed.Products(ctx, listRequest(req))
	if err != nil {
		return nil, h.toStatus(ctx, "list products", err)
	}
	return &resp, nil
}

func listRequest(req *dto.ListRequest) dto.ListRequest {
	if req == nil {
		return dto.ListRequest{}
	}
	return *req
}

// toStatus maps a use case error onto a gRPC status. Validation failures
// carry their message; anything else is logged and hidden.
func (h *DecisionEngineHandler) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.logger.ErrorContext(ctx, "failed to "+op, "error", err)
	return status.Errorf(codes.Internal, "failed to %s", op)
}
