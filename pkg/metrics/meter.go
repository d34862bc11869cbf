package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

type (
	// MeterClient records values on OTEL instruments registered lazily per key.
	// Integer values go to counters, float and duration values to histograms.
	MeterClient struct {
		meter      metric.Meter
		shutdown   func(context.Context) error
		mu         sync.RWMutex
		counters   map[string]metric.Int64Counter
		histograms map[string]metric.Float64Histogram
	}
)

func NewMeterClient(meter metric.Meter, shutdown func(context.Context) error) *MeterClient {
	return &MeterClient{
		meter:      meter,
		shutdown:   shutdown,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (c *MeterClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	opt := metric.WithAttributes(attributes...)

	switch v := value.(type) {
	case int:
		c.counter(key).Add(ctx, int64(v), opt)
	case int64:
		c.counter(key).Add(ctx, v, opt)
	case uint64:
		c.counter(key).Add(ctx, int64(v), opt)
	case float64:
		c.histogram(key).Record(ctx, v, opt)
	case time.Duration:
		c.histogram(key).Record(ctx, v.Seconds(), opt)
	}
}

// Handler is not served: instruments are exported through the meter provider.
func (c *MeterClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *MeterClient) Shutdown(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}

	return c.shutdown(ctx)
}

func (c *MeterClient) counter(key string) metric.Int64Counter {
	c.mu.RLock()
	counter, ok := c.counters[key]
	c.mu.RUnlock()

	if ok {
		return counter
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok = c.counters[key]; ok {
		return counter
	}

	counter, err := registerCounter(c.meter, key)
	if err != nil {
		return metricnoop.Int64Counter{}
	}

	c.counters[key] = counter

	return counter
}

func (c *MeterClient) histogram(key string) metric.Float64Histogram {
	c.mu.RLock()
	histogram, ok := c.histograms[key]
	c.mu.RUnlock()

	if ok {
		return histogram
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok = c.histograms[key]; ok {
		return histogram
	}

	histogram, err := registerHistogram(c.meter, key)
	if err != nil {
		return metricnoop.Float64Histogram{}
	}

	c.histograms[key] = histogram

	return histogram
}
