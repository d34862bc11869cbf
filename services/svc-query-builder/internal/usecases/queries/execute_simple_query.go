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
	ExecuteSimpleQuery struct {
		Condition model.SimpleCondition
	}

	ExecuteSimpleQueryHandler = decorator.QueryHandler[ExecuteSimpleQuery, *model.SimpleQueryResponse]

	executeSimpleQueryHandler struct {
		queryService ports.QueryBuilderService
	}
)

func NewExecuteSimpleQueryHandler(
	svc ports.QueryBuilderService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ExecuteSimpleQueryHandler {
	return decorator.ApplyQueryDecorators[ExecuteSimpleQuery, *model.SimpleQueryResponse](
		executeSimpleQueryHandler{queryService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h executeSimpleQueryHandler) Execute(ctx context.Context, query ExecuteSimpleQuery) (*model.SimpleQueryResponse, error) {
	return h.queryService.ExecuteSimple(ctx, query.Condition)
}
