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
	FetchSchemaQuery struct{}

	FetchSchemaQueryHandler = decorator.QueryHandler[FetchSchemaQuery, *model.Schema]

	fetchSchemaQueryHandler struct {
		queryService ports.QueryBuilderService
	}
)

func NewFetchSchemaQueryHandler(
	svc ports.QueryBuilderService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchSchemaQueryHandler {
	return decorator.ApplyQueryDecorators[FetchSchemaQuery, *model.Schema](
		fetchSchemaQueryHandler{queryService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h fetchSchemaQueryHandler) Execute(ctx context.Context, _ FetchSchemaQuery) (*model.Schema, error) {
	schema := h.queryService.Schema(ctx)

	return &schema, nil
}
