package grpcserver

//go:generate protoc --go-grpc_out=../.. --go-grpc_opt=module=pokedex -I ../.. proto/chart.proto

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"pokedex/internal/auth"
	"pokedex/internal/charts"
	"pokedex/pkg/grpc/chartpb"
	"pokedex/pkg/models"
)

// ChartSource builds a single chart; *charts.Aggregator satisfies it.
type ChartSource interface {
	Chart(ctx context.Context, kind charts.Kind) *models.ChartSeries
}

// ChartResponse is the decoded form of a GetChart reply. Chart is nil when
// the chart could not be built.
type ChartResponse struct {
	Kind  string              `json:"kind"`
	Chart *models.ChartSeries `json:"chart"`
}

type Server struct {
	chartpb.UnimplementedChartServiceServer

	Charts ChartSource
	Log    zerolog.Logger
}

func NewServer(src ChartSource, log zerolog.Logger) *Server {
	return &Server{Charts: src, Log: log}
}

// NewGRPCServer returns a grpc.Server with the chart service registered.
// Every call is logged and must carry a bearer token accepted by tokens and
// repo.
func NewGRPCServer(srv *Server, tokens auth.TokenService, repo *auth.Repo) *grpc.Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(
		logUnary(srv.Log),
		AuthUnary(tokens, repo),
	))
	chartpb.RegisterChartServiceServer(gs, srv)
	return gs
}

func (s *Server) GetChart(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	kind, err := charts.ParseKind(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "unknown chart")
	}

	chart := s.Charts.Chart(ctx, kind)
	if ctx.Err() != nil {
		return nil, status.FromContextError(ctx.Err()).Err()
	}
	return encodeChart(ChartResponse{Kind: string(kind), Chart: chart})
}

func encodeChart(resp ChartResponse) (*structpb.Struct, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode chart: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode chart: %v", err)
	}
	return out, nil
}

func decodeChart(s *structpb.Struct) (*ChartResponse, error) {
	b, err := protojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := new(ChartResponse)
	if err := json.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func logUnary(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("latency", time.Since(start)).
			Msg("grpc request")
		return resp, err
	}
}
