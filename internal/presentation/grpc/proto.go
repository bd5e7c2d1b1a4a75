package grpc

// proto.go defines the gRPC server interface derived from
// lendora/screening/v1/screening.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/lendora/screening-service/api/gen/go/lendora/screening/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ScreeningServiceServer is the server API for ScreeningService.
type ScreeningServiceServer interface {
	DetectIdentityFraud(context.Context, *DetectFraudRequest) (*DetectFraudResponse, error)
	DetectEmploymentFraud(context.Context, *DetectFraudRequest) (*DetectFraudResponse, error)
	PerformEnhancedScreening(context.Context, *ScreenApplicantRequest) (*ScreeningResponse, error)
	GetScreening(context.Context, *GetScreeningRequest) (*ScreeningResponse, error)
	mustEmbedUnimplementedScreeningServiceServer()
}

// UnimplementedScreeningServiceServer provides forward-compatible default
// implementations.
type UnimplementedScreeningServiceServer struct{}

func (UnimplementedScreeningServiceServer) DetectIdentityFraud(context.Context, *DetectFraudRequest) (*DetectFraudResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DetectIdentityFraud not implemented")
}
func (UnimplementedScreeningServiceServer) DetectEmploymentFraud(context.Context, *DetectFraudRequest) (*DetectFraudResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DetectEmploymentFraud not implemented")
}
func (UnimplementedScreeningServiceServer) PerformEnhancedScreening(context.Context, *ScreenApplicantRequest) (*ScreeningResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PerformEnhancedScreening not implemented")
}
func (UnimplementedScreeningServiceServer) GetScreening(context.Context, *GetScreeningRequest) (*ScreeningResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScreening not implemented")
}
func (UnimplementedScreeningServiceServer) mustEmbedUnimplementedScreeningServiceServer() {}

// RegisterScreeningServiceServer registers the ScreeningServiceServer with
// the gRPC server.
func RegisterScreeningServiceServer(s *grpclib.Server, srv ScreeningServiceServer) {
	s.RegisterService(&_ScreeningService_serviceDesc, srv)
}

var _ScreeningService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "lendora.screening.v1.ScreeningService",
	HandlerType: (*ScreeningServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "DetectIdentityFraud", Handler: _ScreeningService_DetectIdentityFraud_Handler},
		{MethodName: "DetectEmploymentFraud", Handler: _ScreeningService_DetectEmploymentFraud_Handler},
		{MethodName: "PerformEnhancedScreening", Handler: _ScreeningService_PerformEnhancedScreening_Handler},
		{MethodName: "GetScreening", Handler: _ScreeningService_GetScreening_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ScreeningService_DetectIdentityFraud_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DetectFraudRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScreeningServiceServer).DetectIdentityFraud(ctx, req)
}

func _ScreeningService_DetectEmploymentFraud_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DetectFraudRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScreeningServiceServer).DetectEmploymentFraud(ctx, req)
}

func _ScreeningService_PerformEnhancedScreening_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScreenApplicantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScreeningServiceServer).PerformEnhancedScreening(ctx, req)
}

func _ScreeningService_GetScreening_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetScreeningRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ScreeningServiceServer).GetScreening(ctx, req)
}
