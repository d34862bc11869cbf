package queries

import (
	"context"

	"github.com/Shubhamshah007/nse-query-builder/pkg/decorator"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ExecuteDynamicQuery struct {
		Query model.Query
	}

	ExecuteDynamicQueryHandler = decorator.QueryHandler[ExecuteDynamicQuery, *model.ExecutionResponse]

	executeDynamicQueryHandler struct {
		queryService ports.QueryBuilderService
	}
)

func NewExecuteDynamicQueryHandler(
	svc ports.QueryBuilderService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ExecuteDynamicQueryHandler {
	return decorator.ApplyQueryDecorators[ExecuteDynamicQuery, *model.ExecutionResponse](
		executeDynamicQueryHandler{queryService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h executeDynamicQueryHandler) Execute(ctx context.Context, query ExecuteDynamicQuery) (*model.ExecutionResponse, error) {
	return h.queryService.Execute(ctx, query.Query)
}
