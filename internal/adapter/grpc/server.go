package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	yieldcomparev1 "github.com/simaogato/yieldcompare-backend/internal/adapter/grpc/yieldcompare/v1"
	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/comparison"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/report"
)

// Server implements the YieldCompareService gRPC server
type Server struct {
	yieldcomparev1.UnimplementedYieldCompareServiceServer

	ComparisonService *comparison.ComparisonService
}

// NewServer creates a new gRPC server instance
func NewServer(comparisonService *comparison.ComparisonService) *Server {
	return &Server{
		ComparisonService: comparisonService,
	}
}

// NewGRPCServer builds a grpc.Server with auth and logging interceptors and registers s on it.
// Server reflection lists the service; its messages are well-known types.
func NewGRPCServer(s *Server, apiToken string, logger *zap.Logger) *grpclib.Server {
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			AuthInterceptor(apiToken),
		),
	)
	yieldcomparev1.RegisterYieldCompareServiceServer(grpcServer, s)
	reflection.Register(grpcServer)
	return grpcServer
}

// Compare handles the Compare RPC
func (s *Server) Compare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := parseCalculationInput(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	cmp, err := s.ComparisonService.Compare(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := comparisonToStruct(cmp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// ListOptions handles the ListOptions RPC
func (s *Server) ListOptions(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	options := s.ComparisonService.Options()

	incomeBrackets := make([]interface{}, 0, len(options.IncomeBrackets))
	for _, b := range options.IncomeBrackets {
		incomeBrackets = append(incomeBrackets, string(b))
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		yieldcomparev1.FieldFederalBrackets: stringsToList(options.FederalBrackets),
		yieldcomparev1.FieldStates:          stringsToList(options.States),
		yieldcomparev1.FieldIncomeBrackets:  incomeBrackets,
		yieldcomparev1.FieldYieldMin:        domain.MinYieldPct,
		yieldcomparev1.FieldYieldMax:        domain.MaxYieldPct,
		yieldcomparev1.FieldYieldStep:       domain.YieldStepPct,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// parseCalculationInput reads the five request fields. Yields are required numbers, categories required strings.
func parseCalculationInput(req *structpb.Struct) (domain.CalculationInput, error) {
	fields := req.GetFields()

	treasury, err := numberField(fields, yieldcomparev1.FieldTreasuryYieldPct)
	if err != nil {
		return domain.CalculationInput{}, err
	}
	cd, err := numberField(fields, yieldcomparev1.FieldCDYieldPct)
	if err != nil {
		return domain.CalculationInput{}, err
	}
	federal, err := stringField(fields, yieldcomparev1.FieldFederalBracket)
	if err != nil {
		return domain.CalculationInput{}, err
	}
	state, err := stringField(fields, yieldcomparev1.FieldState)
	if err != nil {
		return domain.CalculationInput{}, err
	}
	income, err := stringField(fields, yieldcomparev1.FieldIncomeBracket)
	if err != nil {
		return domain.CalculationInput{}, err
	}

	return domain.CalculationInput{
		TreasuryYieldPct: treasury,
		CDYieldPct:       cd,
		FederalBracket:   federal,
		State:            state,
		IncomeBracket:    domain.IncomeBracket(income),
	}, nil
}

func numberField(fields map[string]*structpb.Value, key string) (float64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("invalid %s: must be a number", key)
	}
	return n.NumberValue, nil
}

func stringField(fields map[string]*structpb.Value, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("invalid %s: must be a string", key)
	}
	return s.StringValue, nil
}

// comparisonToStruct converts a domain Comparison to the response message
func comparisonToStruct(cmp *domain.Comparison) (*structpb.Struct, error) {
	r := cmp.Result
	return structpb.NewStruct(map[string]interface{}{
		yieldcomparev1.FieldID:                  cmp.ID.String(),
		yieldcomparev1.FieldAfterTaxTreasuryPct: r.AfterTaxTreasuryPct,
		yieldcomparev1.FieldAfterTaxCDPct:       r.AfterTaxCDPct,
		yieldcomparev1.FieldCDPremiumPct:        r.CDPremiumPct,
		yieldcomparev1.FieldRecommendation:      string(r.Recommendation),
		yieldcomparev1.FieldRecommendationLabel: r.Recommendation.Label(),
		yieldcomparev1.FieldDisplay: map[string]interface{}{
			yieldcomparev1.FieldAfterTaxTreasuryPct: report.Fixed2(r.AfterTaxTreasuryPct),
			yieldcomparev1.FieldAfterTaxCDPct:       report.Fixed2(r.AfterTaxCDPct),
			yieldcomparev1.FieldCDPremiumPct:        report.Fixed2(r.CDPremiumPct),
		},
		yieldcomparev1.FieldComputedAt: cmp.ComputedAt.UTC().Format(time.RFC3339Nano),
	})
}

func stringsToList(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrYieldOutOfRange), errors.Is(err, domain.ErrUnknownCategory):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrTaxTablesNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	default:
		return status.Errorf(codes.Internal, "%s", err.Error())
	}
}
