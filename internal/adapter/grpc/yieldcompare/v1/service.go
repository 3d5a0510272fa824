// Package yieldcomparev1 describes the yieldcompare.v1.YieldCompareService gRPC API.
//
// Messages are protobuf well-known types: requests and responses are
// google.protobuf.Struct values keyed by the Field* constants below, and
// ListOptions takes google.protobuf.Empty. Any gRPC client that can send a
// Struct can call the service without generated stubs.
package yieldcomparev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "yieldcompare.v1.YieldCompareService"

	YieldCompareService_Compare_FullMethodName     = "/yieldcompare.v1.YieldCompareService/Compare"
	YieldCompareService_ListOptions_FullMethodName = "/yieldcompare.v1.YieldCompareService/ListOptions"
)

// Compare request fields
const (
	FieldTreasuryYieldPct = "treasury_yield_pct"
	FieldCDYieldPct       = "cd_yield_pct"
	FieldFederalBracket   = "federal_bracket"
	FieldState            = "state"
	FieldIncomeBracket    = "income_bracket"
)

// Compare response fields
const (
	FieldID                  = "id"
	FieldAfterTaxTreasuryPct = "after_tax_treasury_pct"
	FieldAfterTaxCDPct       = "after_tax_cd_pct"
	FieldCDPremiumPct        = "cd_premium_pct"
	FieldRecommendation      = "recommendation"
	FieldRecommendationLabel = "recommendation_label"
	FieldDisplay             = "display" // struct of 2-dp strings keyed like the *_pct fields
	FieldComputedAt          = "computed_at"
)

// ListOptions response fields
const (
	FieldFederalBrackets = "federal_brackets"
	FieldStates          = "states"
	FieldIncomeBrackets  = "income_brackets"
	FieldYieldMin        = "yield_min_pct"
	FieldYieldMax        = "yield_max_pct"
	FieldYieldStep       = "yield_step_pct"
)

// YieldCompareServiceServer is the server API for YieldCompareService
type YieldCompareServiceServer interface {
	Compare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOptions(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedYieldCompareServiceServer can be embedded to have forward compatible implementations
type UnimplementedYieldCompareServiceServer struct{}

func (UnimplementedYieldCompareServiceServer) Compare(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Compare not implemented")
}

func (UnimplementedYieldCompareServiceServer) ListOptions(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListOptions not implemented")
}

// RegisterYieldCompareServiceServer registers srv on s
func RegisterYieldCompareServiceServer(s grpc.ServiceRegistrar, srv YieldCompareServiceServer) {
	s.RegisterService(&YieldCompareService_ServiceDesc, srv)
}

func _YieldCompareService_Compare_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(YieldCompareServiceServer).Compare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: YieldCompareService_Compare_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(YieldCompareServiceServer).Compare(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _YieldCompareService_ListOptions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(YieldCompareServiceServer).ListOptions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: YieldCompareService_ListOptions_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(YieldCompareServiceServer).ListOptions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// YieldCompareService_ServiceDesc is the grpc.ServiceDesc for YieldCompareService
var YieldCompareService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*YieldCompareServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Compare",
			Handler:    _YieldCompareService_Compare_Handler,
		},
		{
			MethodName: "ListOptions",
			Handler:    _YieldCompareService_ListOptions_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "yieldcompare/v1/yieldcompare.proto",
}

// YieldCompareServiceClient is the client API for YieldCompareService
type YieldCompareServiceClient interface {
	Compare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type yieldCompareServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewYieldCompareServiceClient creates a client on cc
func NewYieldCompareServiceClient(cc grpc.ClientConnInterface) YieldCompareServiceClient {
	return &yieldCompareServiceClient{cc}
}

func (c *yieldCompareServiceClient) Compare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, YieldCompareService_Compare_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *yieldCompareServiceClient) ListOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, YieldCompareService_ListOptions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
