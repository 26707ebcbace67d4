package grpcserver

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"pokedex/pkg/grpc/chartpb"
)

type Client struct {
	conn  *grpc.ClientConn
	chart chartpb.ChartServiceClient

	// Token is sent as a bearer token on every call when set.
	Token string
}

// Dial connects to a chart service at target. Extra options are appended
// after the insecure transport default.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn, chart: chartpb.NewChartServiceClient(conn)}, nil
}

func (c *Client) GetChart(ctx context.Context, kind string) (*ChartResponse, error) {
	if c.Token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+c.Token)
	}
	resp, err := c.chart.GetChart(ctx, wrapperspb.String(kind))
	if err != nil {
		return nil, err
	}
	out, err := decodeChart(resp)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return out, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
