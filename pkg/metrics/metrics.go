package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	// Client records a value under key. The value type picks the instrument.
	Client interface {
		Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	Descriptor struct {
		Description string
		Unit        string
	}
)

var knownDescriptors = map[string]Descriptor{
	"http_requests_total":           {Description: "HTTP requests served", Unit: "{request}"},
	"http_request_duration_seconds": {Description: "HTTP request latency", Unit: "s"},
	"http_response_size_bytes":      {Description: "HTTP response body size", Unit: "By"},
}

// Describe returns the registered descriptor for key, or one derived from
// its suffix: durations are seconds, sizes are bytes, anything else counts.
func Describe(key string) Descriptor {
	if descriptor, ok := knownDescriptors[key]; ok {
		return descriptor
	}

	switch {
	case strings.HasSuffix(key, ".duration"), strings.HasSuffix(key, "_seconds"):
		return Descriptor{Description: strings.ReplaceAll(key, ".", " "), Unit: "s"}
	case strings.HasSuffix(key, "_bytes"):
		return Descriptor{Description: strings.ReplaceAll(key, "_", " "), Unit: "By"}
	default:
		return Descriptor{Description: strings.ReplaceAll(key, ".", " "), Unit: "1"}
	}
}

func registerCounter(m metric.Meter, name string) (metric.Int64Counter, error) {
	descriptor := Describe(name)

	counter, err := m.Int64Counter(
		name,
		metric.WithDescription(descriptor.Description),
		metric.WithUnit(descriptor.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("registering counter %s: %w", name, err)
	}

	return counter, nil
}

func registerHistogram(m metric.Meter, name string) (metric.Float64Histogram, error) {
	descriptor := Describe(name)

	histogram, err := m.Float64Histogram(
		name,
		metric.WithDescription(descriptor.Description),
		metric.WithUnit(descriptor.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("registering histogram %s: %w", name, err)
	}

	return histogram, nil
}
