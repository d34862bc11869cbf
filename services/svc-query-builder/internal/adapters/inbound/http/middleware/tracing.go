package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	otelTrace "go.opentelemetry.io/otel/trace"
)

// Tracer starts a server span per request and extracts W3C trace context.
func Tracer(serviceName string, tracerProvider otelTrace.TracerProvider) func(http.Handler) http.Handler {
	return otelhttp.NewMiddleware(
		serviceName,
		otelhttp.WithTracerProvider(tracerProvider),
		otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
