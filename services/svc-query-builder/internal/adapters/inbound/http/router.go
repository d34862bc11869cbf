package http

import (
	"net/http"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/inbound/http/handlers"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/inbound/http/middleware"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const healthPath = "/health"

type RouterConfig struct {
	App            *usecases.Application
	Logger         logger.Logger
	MetricsClient  metrics.Client
	TracerProvider otelTrace.TracerProvider
	Config         *config.ServiceConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.SecurityHeaders(cfg.Config.App.APIVersion))
	router.Use(middleware.CORS(cfg.Config.HTTPServer.Origins()))

	if cfg.Config.Telemetry.Traces.Enabled {
		router.Use(middleware.Tracer(cfg.Config.App.ServiceName, cfg.TracerProvider))
		cfg.Logger.Info().Msg("distributed tracing enabled")
	}

	if cfg.Config.Telemetry.Metrics.Enabled {
		router.Use(middleware.Metrics(cfg.MetricsClient))
		cfg.Logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.SkipHealthChecks(cfg.Config.Logging.AccessLog.LogHealthChecks))
		router.Use(middleware.AccessLog(cfg.Logger, cfg.Config.Logging.AccessLog.IncludeQueryParams))
		cfg.Logger.Info().
			Bool("log_health_checks", cfg.Config.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	router.Route(healthPath, handlers.NewHealthHandler(cfg.App).Routes)

	router.Group(func(r chi.Router) {
		if cfg.Config.HTTPServer.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.RequestTimeout))
		}

		r.Route(handlers.BasePath, handlers.NewQueryBuilderHandler(cfg.App).Routes)
	})

	return router
}
