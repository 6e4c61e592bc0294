package grpc

// proto.go defines the gRPC server interface for
// decisionengine.v1.DecisionEngineService. Messages are the application
// DTOs carried by JSONCodec, so no generated protobuf types are needed.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/watermelon/decision-engine/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "decisionengine.v1.DecisionEngineService"

// Full method names, used by clients and the auth interceptor.
const (
	MethodOnboardSupplier = "/" + ServiceName + "/OnboardSupplier"
	MethodAnalyzeChurn    = "/" + ServiceName + "/AnalyzeChurn"
	MethodForecastDemand  = "/" + ServiceName + "/ForecastDemand"
	MethodListSuppliers   = "/" + ServiceName + "/ListSuppliers"
	MethodListBuyers      = "/" + ServiceName + "/ListBuyers"
	MethodListProducts    = "/" + ServiceName + "/ListProducts"
)

// DecisionEngineServiceServer is the server API for DecisionEngineService.
type DecisionEngineServiceServer interface {
	OnboardSupplier(context.Context, *dto.OnboardSupplierRequest) (*dto.SupplierResponse, error)
	AnalyzeChurn(context.Context, *dto.AnalyzeChurnRequest) (*dto.ChurnResponse, error)
	ForecastDemand(context.Context, *dto.ForecastDemandRequest) (*dto.ForecastResponse, error)
	ListSuppliers(context.Context, *dto.ListRequest) (*dto.SupplierListResponse, error)
	ListBuyers(context.Context, *dto.ListRequest) (*dto.ChurnListResponse, error)
	ListProducts(context.Context, *dto.ListRequest) (*dto.ForecastListResponse, error)
	mustEmbedUnimplementedDecisionEngineServiceServer()
}

// UnimplementedDecisionEngineServiceServer provides forward-compatible default implementations.
type UnimplementedDecisionEngineServiceServer struct{}

func (UnimplementedDecisionEngineServiceServer) OnboardSupplier(context.Context, *dto.OnboardSupplierRequest) (*dto.SupplierResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OnboardSupplier not implemented")
}
func (UnimplementedDecisionEngineServiceServer) AnalyzeChurn(context.Context, *dto.AnalyzeChurnRequest) (*dto.ChurnResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeChurn not implemented")
}
func (UnimplementedDecisionEngineServiceServer) ForecastDemand(context.Context, *dto.ForecastDemandRequest) (*dto.ForecastResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ForecastDemand not implemented")
}
func (UnimplementedDecisionEngineServiceServer) ListSuppliers(context.Context, *dto.ListRequest) (*dto.SupplierListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSuppliers not implemented")
}
func (UnimplementedDecisionEngineServiceServer) ListBuyers(context.Context, *dto.ListRequest) (*dto.ChurnListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListBuyers not implemented")
}
func (UnimplementedDecisionEngineServiceServer) ListProducts(context.Context, *dto.ListRequest) (*dto.ForecastListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedDecisionEngineServiceServer) mustEmbedUnimplementedDecisionEngineServiceServer() {}

// RegisterDecisionEngineServiceServer registers the server with the gRPC server.
func RegisterDecisionEngineServiceServer(s grpclib.ServiceRegistrar, srv DecisionEngineServiceServer) {
	s.RegisterService(&_DecisionEngineService_serviceDesc, srv)
}

var _DecisionEngineService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DecisionEngineServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OnboardSupplier", Handler: _DecisionEngineService_OnboardSupplier_Handler},
		{MethodName: "AnalyzeChurn", Handler: _DecisionEngineService_AnalyzeChurn_Handler},
		{MethodName: "ForecastDemand", Handler: _DecisionEngineService_ForecastDemand_Handler},
		{MethodName: "ListSuppliers", Handler: _DecisionEngineService_ListSuppliers_Handler},
		{MethodName: "ListBuyers", Handler: _DecisionEngineService_ListBuyers_Handler},
		{MethodName: "ListProducts", Handler: _DecisionEngineService_ListProducts_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _DecisionEngineService_OnboardSupplier_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.OnboardSupplierRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).OnboardSupplier(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodOnboardSupplier}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).OnboardSupplier(ctx, req.(*dto.OnboardSupplierRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _DecisionEngineService_AnalyzeChurn_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.AnalyzeChurnRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).AnalyzeChurn(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodAnalyzeChurn}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).AnalyzeChurn(ctx, req.(*dto.AnalyzeChurnRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _DecisionEngineService_ForecastDemand_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.ForecastDemandRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).ForecastDemand(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodForecastDemand}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).ForecastDemand(ctx, req.(*dto.ForecastDemandRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _DecisionEngineService_ListSuppliers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.ListRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).ListSuppliers(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodListSuppliers}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).ListSuppliers(ctx, req.(*dto.ListRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _DecisionEngineService_ListBuyers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.ListRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).ListBuyers(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodListBuyers}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).ListBuyers(ctx, req.(*dto.ListRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _DecisionEngineService_ListProducts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(dto.ListRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionEngineServiceServer).ListProducts(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: MethodListProducts}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionEngineServiceServer).ListProducts(ctx, req.(*dto.ListRequest))
	}
	return interceptor(ctx, req, info, handler)
}
