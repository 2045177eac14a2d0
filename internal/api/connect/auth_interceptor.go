// Package connect provides Connect RPC service implementations.
package connect

import (
	"context"
	"crypto/subtle"

	"connectrpc.com/connect"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
)

const (
	// PlayerTokenHeader is the header carrying the player token.
	PlayerTokenHeader = "X-Player-Token"
)

// NewTokenInterceptor creates an interceptor that requires token on every
// mutating call. Read-only calls pass through. An empty token disables the
// check.
func NewTokenInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token == "" || !isMutation(req.Spec().Procedure) {
				return next(ctx, req)
			}

			got := req.Header().Get(PlayerTokenHeader)
			if got == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, nil)
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return nil, connect.NewError(connect.CodeUnauthenticated, nil)
			}

			return next(ctx, req)
		}
	}
}

func isMutation(procedure string) bool {
	return playerv1.IsPlayerMutation(procedure) || playerv1.IsBrowseMutation(procedure)
}

// NewTokenHeaderInterceptor attaches token to outgoing requests. Clients
// use it when the server requires a token.
func NewTokenHeaderInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set(PlayerTokenHeader, token)
			}
			return next(ctx, req)
		}
	}
}
