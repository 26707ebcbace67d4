package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"pokedex/internal/auth"
)

const authorizationKey = "authorization"

// AuthUnary rejects calls without an "authorization: Bearer <token>" entry
// that tokens and repo accept. Accepted claims are stored on the context.
func AuthUnary(tokens auth.TokenService, repo *auth.Repo) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		vals := md.Get(authorizationKey)
		if len(vals) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		raw, err := auth.BearerToken(vals[0])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		claims, err := auth.Authorize(ctx, tokens, repo, raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, "token expired")
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(auth.NewContext(ctx, claims), req)
	}
}
