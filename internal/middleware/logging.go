package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, member, duration, and any error codes/messages.
// Install it inside RequireAuth so the member is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			member := GetMember(ctx)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.WarnContext(ctx, "RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"member", member,
						"duration_ms", duration,
					)
				} else {
					logger.ErrorContext(ctx, "RPC error",
						"procedure", procedure,
						"error", err,
						"member", member,
						"duration_ms", duration,
					)
				}
			} else {
				logger.InfoContext(ctx, "RPC ok",
					"procedure", procedure,
					"member", member,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
