package runtime

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics/noop"
	inboundhttp "github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/inbound/http"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/config"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/infrastructure"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/services"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	"github.com/hashicorp/vault/api"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithSecretsRepository(),
		WithConfigLoader(ctx),
		WithTracing(),
		WithMetrics(),
		WithDatastore(ctx),
		WithTemplateRepository(ctx),
		WithServices(),
		WithApplication(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithSecretsRepository() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled {
			return nil
		}

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = d.config.SecretsStorage.Address
		vaultConfig.Timeout = d.config.SecretsStorage.Timeout

		if d.config.SecretsStorage.TLSSkipVerify {
			vaultConfig.HttpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("creating Vault client: %w", err)
		}

		if d.config.SecretsStorage.Namespace != "" {
			client.SetNamespace(d.config.SecretsStorage.Namespace)
		}

		d.repos.secretsRepo = repos.NewVaultRepository(client)

		return nil
	}
}

func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled || d.repos.secretsRepo == nil {
			return nil
		}

		loader := config.NewLoader(d.config, d.repos.secretsRepo, 0)

		version, err := loader.Load(ctx, d.repos.secretsRepo, d.config)
		if err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		d.configLoader = config.NewLoader(d.config, d.repos.secretsRepo, version)

		d.infra.logger.Info().
			Uint("secret_version", version).
			Msg("secrets loaded from Vault")

		return nil
	}
}

func WithTracing() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Traces.Enabled {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(d.config.App, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.registerCleanup("tracer", shutdown)

		return nil
	}
}

func WithMetrics() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		client, err := infrastructure.NewMetricsClient(d.config.App, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}

		d.infra.metricsClient = client
		d.registerCleanup("metrics", client.Shutdown)

		return nil
	}
}

func WithDatastore(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		datastore, err := OpenDatastore(ctx, d.config, d.infra.logger)
		if err != nil {
			return fmt.Errorf("opening datastore: %w", err)
		}

		d.infra.datastore = datastore
		d.registerCleanup("datastore", func(context.Context) error {
			datastore.Close()

			return nil
		})

		d.infra.logger.Info().
			Str("driver", datastore.Dialect.Name).
			Msg("connected to datastore")

		return nil
	}
}

// WithTemplateRepository selects the template store. The in-memory store
// accepts new templates only outside production.
func WithTemplateRepository(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		switch d.config.Templates.Store {
		case config.TemplateStoreRedis:
			client := infrastructure.NewRedisClient(d.config.Cache, d.infra.logger)
			if err := client.Ping(ctx); err != nil {
				_ = client.Close()

				return fmt.Errorf("connecting to template cache: %w", err)
			}

			d.infra.cacheClient = client
			d.repos.templateRepo = repos.NewRedisTemplateRepository(client, d.infra.logger)
			d.registerCleanup("cache", func(context.Context) error {
				return client.Close()
			})

		default:
			d.repos.templateRepo = repos.NewInMemoryTemplateRepository(!d.config.IsProduction())
		}

		return nil
	}
}

func WithServices() DependencyOption {
	return func(d *dependencies) error {
		datastore := d.infra.datastore
		compiler := repos.NewQueryCompiler(datastore.Dialect, d.infra.logger)

		d.services.query = services.NewQueryService(compiler, datastore.Store, d.infra.logger, d.config.Database.LogQueries)
		d.services.templates = services.NewTemplateService(d.repos.templateRepo)

		d.services.healthChecker = services.NewHealthChecker().Register("database", datastore.Store)
		if d.infra.cacheClient != nil {
			d.services.healthChecker.Register("cache", d.infra.cacheClient)
		}

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.services.query,
			d.services.templates,
			d.services.healthChecker,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := inboundhttp.NewRouter(inboundhttp.RouterConfig{
			App:            d.app,
			Logger:         d.infra.logger,
			MetricsClient:  d.infra.metricsClient,
			TracerProvider: d.infra.tracerProvider,
			Config:         d.config,
		})

		d.infra.httpServer = &http.Server{
			Addr:         net.JoinHostPort(d.config.HTTPServer.Host, strconv.FormatUint(uint64(d.config.HTTPServer.Port), 10)),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		return nil
	}
}
