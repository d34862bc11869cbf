package config

import (
	"fmt"
	"strings"
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

const (
	TemplateStoreMemory = "memory"
	TemplateStoreRedis  = "redis"
)

type (
	ServiceConfig struct {
		App            App            `json:"app"`
		SecretsStorage SecretsStorage `json:"secrets_storage"`
		HTTPServer     HTTPServer     `json:"http_server"`
		Database       Database       `json:"database"`
		Cache          Cache          `json:"cache"`
		Templates      Templates      `json:"templates"`
		CircuitBreaker CircuitBreaker `json:"circuit_breaker"`
		Backoff        Backoff        `json:"backoff"`
		Logging        Logging        `json:"logging"`
		Telemetry      Telemetry      `json:"telemetry"`
	}

	App struct {
		ServiceName string      `envconfig:"APP_SERVICE_NAME" default:"svc-query-builder" json:"service_name"`
		APIVersion  string      `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env         Environment `json:"environment"`
	}

	Environment struct {
		Name string `envconfig:"APP_ENVIRONMENT" default:"development" json:"env"`
	}

	SecretsStorage struct {
		Enabled       bool          `envconfig:"VAULT_ENABLED" default:"false" json:"enabled"`
		Address       string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token         string        `envconfig:"VAULT_TOKEN" default:"" json:"token,omitempty"`
		RoleID        string        `envconfig:"VAULT_ROLE_ID" default:"" json:"role_id,omitempty"`
		SecretID      string        `envconfig:"VAULT_SECRET_ID" default:"" json:"secret_id,omitempty"`
		AuthMethod    string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method"`
		MountPath     string        `envconfig:"VAULT_MOUNT_PATH" default:"svc-query-builder" json:"mount_path"`
		Namespace     string        `envconfig:"VAULT_NAMESPACE" default:"" json:"namespace,omitempty"`
		Timeout       time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries    uint          `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
		TLSSkipVerify bool          `envconfig:"VAULT_TLS_SKIP_VERIFY" default:"false" json:"tls_skip_verify"`
		PollInterval  time.Duration `envconfig:"VAULT_POLL_INTERVAL" default:"24h" json:"poll_interval"`
	}

	HTTPServer struct {
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		Port            uint          `envconfig:"PORT" default:"3000" json:"port"`
		ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s" json:"idle_timeout"`
		RequestTimeout  time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"25s" json:"request_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
		AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000" json:"allowed_origins"`
		FrontendURL     string        `envconfig:"FRONTEND_URL" default:"" json:"frontend_url"`
	}

	Database struct {
		// Driver is postgres or mysql. A non-empty URL always means postgres.
		Driver          string        `envconfig:"DATABASE_DRIVER" default:"postgres" json:"driver"`
		URL             string        `envconfig:"DATABASE_URL" default:"" json:"url,omitempty"`
		Host            string        `envconfig:"DATABASE_HOST" default:"localhost" json:"host"`
		Port            uint          `envconfig:"DATABASE_PORT" default:"5432" json:"port"`
		Name            string        `envconfig:"DATABASE_NAME" default:"option_data" json:"name"`
		Username        string        `envconfig:"DATABASE_USER" default:"postgres" json:"username"`
		Password        string        `envconfig:"DATABASE_PASSWORD" default:"" json:"password,omitempty"`
		SSLMode         string        `envconfig:"DATABASE_SSL_MODE" default:"disable" json:"ssl_mode"`
		LogQueries      bool          `envconfig:"DATABASE_LOGGING" default:"false" json:"log_queries"`
		MaxConnections  int           `envconfig:"DATABASE_MAX_CONNECTIONS" default:"25" json:"max_connections"`
		MinConnections  int           `envconfig:"DATABASE_MIN_CONNECTIONS" default:"2" json:"min_connections"`
		ConnectTimeout  time.Duration `envconfig:"DATABASE_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		MaxConnLifetime time.Duration `envconfig:"DATABASE_MAX_CONN_LIFETIME" default:"1h" json:"max_conn_lifetime"`
		MaxConnIdleTime time.Duration `envconfig:"DATABASE_MAX_CONN_IDLE_TIME" default:"30m" json:"max_conn_idle_time"`
	}

	Cache struct {
		Address      string        `envconfig:"CACHE_ADDRESS" default:"keydb:6379" json:"address"`
		Password     string        `envconfig:"CACHE_PASSWORD" default:"" json:"password,omitempty"`
		DB           uint          `envconfig:"CACHE_DB" default:"0" json:"db"`
		PoolSize     uint          `envconfig:"CACHE_POOL_SIZE" default:"10" json:"pool_size"`
		MinIdleConns uint          `envconfig:"CACHE_MIN_IDLE_CONNS" default:"1" json:"min_idle_conns"`
		DialTimeout  time.Duration `envconfig:"CACHE_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout  time.Duration `envconfig:"CACHE_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout time.Duration `envconfig:"CACHE_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
		PoolTimeout  time.Duration `envconfig:"CACHE_POOL_TIMEOUT" default:"5s" json:"pool_timeout"`
		MaxRetries   uint          `envconfig:"CACHE_MAX_RETRIES" default:"3" json:"max_retries"`
		KeyPrefix    string        `envconfig:"CACHE_KEY_PREFIX" default:"qb:" json:"key_prefix"`
	}

	Templates struct {
		Store string `envconfig:"TEMPLATES_STORE" default:"memory" json:"store"`
	}

	CircuitBreaker struct {
		Enabled          bool          `envconfig:"DATABASE_CB_ENABLED" default:"false" json:"enabled"`
		MaxRequests      uint          `envconfig:"DATABASE_CB_MAX_REQUESTS" default:"1" json:"max_requests"`
		Interval         time.Duration `envconfig:"DATABASE_CB_INTERVAL" default:"60s" json:"interval"`
		Timeout          time.Duration `envconfig:"DATABASE_CB_TIMEOUT" default:"30s" json:"timeout"`
		FailureThreshold uint          `envconfig:"DATABASE_CB_FAILURE_THRESHOLD" default:"5" json:"failure_threshold"`
	}

	// Backoff governs the datastore ping at startup only.
	Backoff struct {
		BaseDelay   time.Duration `envconfig:"BACKOFF_BASE_DELAY" default:"500ms" json:"base_delay"`
		Multiplier  float64       `envconfig:"BACKOFF_MULTIPLIER" default:"1.5" json:"multiplier"`
		Jitter      float64       `envconfig:"BACKOFF_JITTER" default:"0.3" json:"jitter"`
		MaxDelay    time.Duration `envconfig:"BACKOFF_MAX_DELAY" default:"5s" json:"max_delay"`
		MaxElapsed  time.Duration `envconfig:"BACKOFF_MAX_ELAPSED" default:"30s" json:"max_elapsed"`
		MaxAttempts uint          `envconfig:"BACKOFF_MAX_ATTEMPTS" default:"10" json:"max_attempts"`
	}

	Logging struct {
		Level     string    `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format    string    `envconfig:"LOG_FORMAT" default:"json" json:"format"`
		AccessLog AccessLog `json:"access_log"`
	}

	AccessLog struct {
		Enabled            bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks    bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
		IncludeQueryParams bool `envconfig:"ACCESS_LOG_INCLUDE_QUERY_PARAMS" default:"true" json:"include_query_params"`
	}

	Telemetry struct {
		ExporterType   string `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`
		OTLPEndpoint   string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"" json:"otlp_endpoint"`
		ServiceName    string `envconfig:"OTEL_SERVICE_NAME" default:"svc-query-builder" json:"service_name"`
		ServiceVersion string `envconfig:"OTEL_SERVICE_VERSION" default:"1.0.0" json:"service_version"`

		Metrics Metrics `json:"metrics"`
		Traces  Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled  bool          `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
		Interval time.Duration `envconfig:"METRICS_EXPORT_INTERVAL" default:"30s" json:"interval"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1.0" json:"sampler_ratio"`
	}
)

func (c *ServiceConfig) GetEnvironment() int {
	switch c.App.Env.Name {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "sandbox", "sbx":
		return Sandbox
	default:
		return Development
	}
}

func (c *ServiceConfig) IsProduction() bool {
	return c.GetEnvironment() == Production
}

// Validate rejects settings the service cannot start with.
func (c *ServiceConfig) Validate() error {
	switch c.Database.EffectiveDriver() {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Templates.Store {
	case TemplateStoreMemory, TemplateStoreRedis:
	default:
		return fmt.Errorf("unsupported template store %q", c.Templates.Store)
	}

	if c.Telemetry.Traces.SamplerRatio < 0 || c.Telemetry.Traces.SamplerRatio > 1 {
		return fmt.Errorf("traces sampler ratio must be between 0 and 1, got %v", c.Telemetry.Traces.SamplerRatio)
	}

	return nil
}

// EffectiveDriver resolves the engine, preferring postgres whenever a URL is set.
func (d Database) EffectiveDriver() string {
	if d.URL != "" {
		return "postgres"
	}

	return strings.ToLower(d.Driver)
}

// Origins returns the CORS allow-list including the frontend URL.
func (h HTTPServer) Origins() []string {
	origins := append([]string(nil), h.AllowedOrigins...)
	if h.FrontendURL != "" {
		origins = append(origins, h.FrontendURL)
	}

	return origins
}
