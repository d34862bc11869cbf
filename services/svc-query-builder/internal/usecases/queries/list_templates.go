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
	ListTemplatesQuery struct{}

	ListTemplatesQueryHandler = decorator.QueryHandler[ListTemplatesQuery, []model.Template]

	listTemplatesQueryHandler struct {
		templateService ports.TemplateService
	}
)

func NewListTemplatesQueryHandler(
	svc ports.TemplateService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListTemplatesQueryHandler {
	return decorator.ApplyQueryDecorators[ListTemplatesQuery, []model.Template](
		listTemplatesQueryHandler{templateService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listTemplatesQueryHandler) Execute(ctx context.Context, _ ListTemplatesQuery) ([]model.Template, error) {
	return h.templateService.ListTemplates(ctx)
}
