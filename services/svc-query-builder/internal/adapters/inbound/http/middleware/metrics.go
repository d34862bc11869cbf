package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

const (
	httpMethodKey     = "http.method"
	httpRouteKey      = "http.route"
	httpStatusCodeKey = "http.status_code"

	httpRequestTotal    = "http_requests_total"
	httpRequestDuration = "http_request_duration_seconds"
	httpResponseSize    = "http_response_size_bytes"
)

// Metrics records request count, latency and response size per route pattern.
func Metrics(metricsClient metrics.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := NewStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			attrs := []attribute.KeyValue{
				attribute.String(httpMethodKey, r.Method),
				attribute.String(httpRouteKey, routePattern(r)),
				attribute.String(httpStatusCodeKey, strconv.Itoa(recorder.StatusCode())),
			}

			metricsClient.Inc(r.Context(), httpRequestTotal, int64(1), attrs...)
			metricsClient.Inc(r.Context(), httpRequestDuration, time.Since(start), attrs...)
			metricsClient.Inc(r.Context(), httpResponseSize, recorder.BytesWritten(), attrs...)
		})
	}
}

// routePattern keeps template ids out of metric attributes.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return r.URL.Path
}
