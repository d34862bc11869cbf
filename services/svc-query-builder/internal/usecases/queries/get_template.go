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
	GetTemplateQuery struct {
		ID string
	}

	GetTemplateQueryHandler = decorator.QueryHandler[GetTemplateQuery, *model.Template]

	getTemplateQueryHandler struct {
		templateService ports.TemplateService
	}
)

func NewGetTemplateQueryHandler(
	svc ports.TemplateService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetTemplateQueryHandler {
	return decorator.ApplyQueryDecorators[GetTemplateQuery, *model.Template](
		getTemplateQueryHandler{templateService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getTemplateQueryHandler) Execute(ctx context.Context, query GetTemplateQuery) (*model.Template, error) {
	return h.templateService.GetTemplate(ctx, query.ID)
}
