package usecases

import (
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases/commands"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		SaveTemplate commands.SaveTemplateCommandHandler
	}

	Queries struct {
		ExecuteDynamicQuery queries.ExecuteDynamicQueryHandler
		ExecuteSimpleQuery  queries.ExecuteSimpleQueryHandler
		ValidateQuery       queries.ValidateQueryHandler
		FetchSchema         queries.FetchSchemaQueryHandler
		ListTemplates       queries.ListTemplatesQueryHandler
		GetTemplate         queries.GetTemplateQueryHandler
		FetchLiveness       queries.FetchLivenessQueryHandler
		FetchReadiness      queries.FetchReadinessQueryHandler
		FetchHealthReport   queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}
)

func NewApplication(
	queryService ports.QueryBuilderService,
	templateService ports.TemplateService,
	healthChecker ports.HealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	return &Application{
		Commands: Commands{
			SaveTemplate: commands.NewSaveTemplateCommandHandler(templateService, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			ExecuteDynamicQuery: queries.NewExecuteDynamicQueryHandler(queryService, log, metricsClient, tracerProvider),
			ExecuteSimpleQuery:  queries.NewExecuteSimpleQueryHandler(queryService, log, metricsClient, tracerProvider),
			ValidateQuery:       queries.NewValidateQueryHandler(queryService, log, metricsClient, tracerProvider),
			FetchSchema:         queries.NewFetchSchemaQueryHandler(queryService, log, metricsClient, tracerProvider),
			ListTemplates:       queries.NewListTemplatesQueryHandler(templateService, log, metricsClient, tracerProvider),
			GetTemplate:         queries.NewGetTemplateQueryHandler(templateService, log, metricsClient, tracerProvider),
			FetchLiveness:       queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness:      queries.NewFetchReadinessQueryHandler(healthChecker, log, metricsClient, tracerProvider),
			FetchHealthReport:   queries.NewFetchHealthReportQueryHandler(healthChecker, log, metricsClient, tracerProvider),
		},
	}
}
