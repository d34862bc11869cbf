package decorator

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Command any

	CommandHandler[C Command, R any] interface {
		Handle(context.Context, C) (R, error)
	}
)

func ApplyCommandDecorators[C Command, R any](
	handler CommandHandler[C, R],
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CommandHandler[C, R] {
	return commandLoggingDecorator[C, R]{
		base: commandMetricsDecorator[C, R]{
			base: commandTracingDecorator[C, R]{
				base:           handler,
				tracerProvider: tracerProvider,
			},
			client: metricsClient,
		},
		logger: log,
	}
}

// generateActionName returns the unqualified type name of the query or command,
// e.g. "ExecuteDynamicQuery" for queries.ExecuteDynamicQuery.
func generateActionName(handler any) string {
	name := fmt.Sprintf("%T", handler)
	name = strings.TrimLeft(name, "*")

	if index := strings.LastIndex(name, "."); index >= 0 {
		return name[index+1:]
	}

	return name
}
