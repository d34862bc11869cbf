package middleware

import (
	"context"
	"net/http"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDHeader = "X-Request-Id"
)

// RequestID propagates the caller's request id or mints a new one. The id is
// stored under the logger's key so request-scoped log lines carry it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), logger.ContextKeyRequestID, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(logger.ContextKeyRequestID).(string); ok {
		return id
	}

	return ""
}
