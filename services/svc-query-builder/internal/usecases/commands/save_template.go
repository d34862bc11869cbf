package commands

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
	SaveTemplateCommand struct {
		Template model.Template
	}

	SaveTemplateCommandHandler = decorator.CommandHandler[SaveTemplateCommand, *model.Template]

	saveTemplateCommandHandler struct {
		templateService ports.TemplateService
	}
)

func NewSaveTemplateCommandHandler(
	svc ports.TemplateService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) SaveTemplateCommandHandler {
	return decorator.ApplyCommandDecorators[SaveTemplateCommand, *model.Template](
		saveTemplateCommandHandler{templateService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h saveTemplateCommandHandler) Handle(ctx context.Context, cmd SaveTemplateCommand) (*model.Template, error) {
	return h.templateService.SaveTemplate(ctx, cmd.Template)
}
