package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// MemberKey is the context key for storing the authenticated member.
const MemberKey contextKey = "member"

// GetMember extracts the authenticated member from the context.
// Returns empty string if not found.
func GetMember(ctx context.Context) string {
	member, _ := ctx.Value(MemberKey).(string)
	return member
}

// WithMember returns a copy of ctx carrying member as the caller.
func WithMember(ctx context.Context, member string) context.Context {
	return context.WithValue(ctx, MemberKey, member)
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the member to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithMember(ctx, claims.Member), req)
		}
	}
}

// BearerToken returns a client interceptor that attaches token to every
// outgoing request.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
