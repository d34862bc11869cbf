package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
)

const (
	skipAccessLogKey contextKey = "skip_access_log"

	healthPathPrefix = "/health"
)

// SkipHealthChecks marks health probe requests so AccessLog leaves them out.
// With logHealthChecks set every request is logged.
func SkipHealthChecks(logHealthChecks bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logHealthChecks || !isHealthPath(r.URL.Path) {
				next.ServeHTTP(w, r)

				return
			}

			ctx := context.WithValue(r.Context(), skipAccessLogKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLog writes one line per request, at warn for 4xx and error for 5xx.
func AccessLog(log logger.Logger, includeQueryParams bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipAccessLog(r.Context()) {
				next.ServeHTTP(w, r)

				return
			}

			start := time.Now()
			recorder := NewStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			reqLogger := log.WithContext(r.Context()).
				With().
				Str("component", "http").
				Logger()

			event := reqLogger.Info()
			switch {
			case recorder.StatusCode() >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case recorder.StatusCode() >= http.StatusBadRequest:
				event = reqLogger.Warn()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Int("status", recorder.StatusCode()).
				Uint64("bytes", recorder.BytesWritten()).
				Int64("duration_ms", time.Since(start).Milliseconds())

			if includeQueryParams && r.URL.RawQuery != "" {
				event.Str("query", r.URL.RawQuery)
			}

			event.Msg("request completed")
		})
	}
}

func isHealthPath(path string) bool {
	return path == healthPathPrefix || strings.HasPrefix(path, healthPathPrefix+"/")
}

func shouldSkipAccessLog(ctx context.Context) bool {
	skip, ok := ctx.Value(skipAccessLogKey).(bool)

	return ok && skip
}
