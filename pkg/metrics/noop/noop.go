// Package noop discards metrics. It backs the service when telemetry
// metrics are disabled and keeps tests free of exporters.
package noop

import (
	"context"
	"net/http"

	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

var _ metrics.Client = MetricsClient{}

type MetricsClient struct{}

func NewMetricsClient() MetricsClient {
	return MetricsClient{}
}

func (MetricsClient) Inc(context.Context, string, any, ...attribute.KeyValue) {}

// Handler answers every scrape with 404 since nothing is collected.
func (MetricsClient) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "metrics are disabled", http.StatusNotFound)
	})
}

func (MetricsClient) Shutdown(context.Context) error {
	return nil
}
