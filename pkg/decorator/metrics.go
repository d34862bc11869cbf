package decorator

import (
	"context"
	"strings"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

type (
	commandMetricsDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		client metrics.Client
	}

	queryMetricsDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		client metrics.Client
	}
)

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	start := time.Now()

	defer func() {
		record(ctx, d.client, "commands", generateActionName(cmd), time.Since(start), err)
	}()

	return d.base.Handle(ctx, cmd)
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	start := time.Now()

	defer func() {
		record(ctx, d.client, "queries", generateActionName(query), time.Since(start), err)
	}()

	return d.base.Execute(ctx, query)
}

// record emits one duration sample and one counter increment per call,
// both tagged with the outcome.
func record(ctx context.Context, client metrics.Client, kind, action string, elapsed time.Duration, err error) {
	if client == nil {
		return
	}

	outcome := attribute.String("outcome", outcomeSuccess)
	if err != nil {
		outcome = attribute.String("outcome", outcomeFailure)
	}

	prefix := kind + "." + strings.ToLower(action)

	client.Inc(ctx, prefix+".duration", elapsed, outcome)
	client.Inc(ctx, prefix+".total", 1, outcome)
}
