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
	ValidateQuery struct {
		Query model.Query
	}

	ValidateQueryHandler = decorator.QueryHandler[ValidateQuery, *model.ValidationResult]

	validateQueryHandler struct {
		queryService ports.QueryBuilderService
	}
)

func NewValidateQueryHandler(
	svc ports.QueryBuilderService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ValidateQueryHandler {
	return decorator.ApplyQueryDecorators[ValidateQuery, *model.ValidationResult](
		validateQueryHandler{queryService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

// Execute never fails: an invalid query is a successful result with errors listed.
func (h validateQueryHandler) Execute(ctx context.Context, query ValidateQuery) (*model.ValidationResult, error) {
	result := h.queryService.Validate(ctx, query.Query)
	if result.Errors == nil {
		result.Errors = []string{}
	}

	return &result, nil
}
