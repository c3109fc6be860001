// Package middleware provides Connect interceptors shared by all services.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// Loggable is implemented by request and response messages that add
// key/value pairs to the RPC log line (batch sizes, decision, status counts).
type Loggable interface {
	LogAttrs() []any
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, duration, the attributes of Loggable messages,
// and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			attrs = append(attrs, messageAttrs(req.Any())...)

			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					attrs = append(attrs, "code", connectErr.Code(), "error", connectErr.Message())
					slog.Warn("RPC error", attrs...)
				} else {
					attrs = append(attrs, "error", err)
					slog.Error("RPC error", attrs...)
				}
				return resp, err
			}

			// Handlers return a typed nil response alongside errors, so the
			// response is only read on success.
			attrs = append(attrs, messageAttrs(resp.Any())...)
			slog.Info("RPC ok", attrs...)
			return resp, nil
		}
	}
}

func messageAttrs(msg any) []any {
	if l, ok := msg.(Loggable); ok {
		return l.LogAttrs()
	}
	return nil
}
