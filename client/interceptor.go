package client

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const loginMethod = "/api.InternalService/Login"

// reauthUnaryInterceptor returns a unary client interceptor that handles
// server-side session expiry: when a call fails Unauthenticated with an
// expiry-class detail, it logs in again and retries the call exactly once.
// Every other error passes through untouched.
func (c *Client) reauthUnaryInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if method == loginMethod || !isSessionExpired(err) {
			return err
		}
		c.log.Warn().Str("method", method).Msg("session token expired, re-authenticating")
		if lerr := c.creds.login(ctx); lerr != nil {
			c.log.Error().Err(lerr).Msg("re-authentication failed")
			return lerr
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// isSessionExpired reports whether err is the server's token-expiry rejection.
// The server returns plain Unauthenticated for bad credentials too; only the
// ExpiredSignature detail marks a token that a re-login can fix.
func isSessionExpired(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated {
		return false
	}
	return strings.Contains(st.Message(), "ExpiredSignature")
}
