package config

import (
	"fmt"
	"time"

	"github.com/burhaniassociates/storefront/internal/repository/breaker"
	pkgconfig "github.com/burhaniassociates/storefront/pkg/config"
	"github.com/burhaniassociates/storefront/pkg/database"
	"github.com/burhaniassociates/storefront/pkg/tracing"
	"github.com/burhaniassociates/storefront/pkg/validator"
)

// Store drivers selectable with STORE_DRIVER.
const (
	DriverORM      = "orm"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Site content; empty uses the embedded default.
	SiteContentFile string `env:"SITE_CONTENT_FILE"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB   string `env:"STOREFRONT_DB_NAME" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10" validate:"min=1"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2" validate:"min=0"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// Catalog store
	StoreDriver string `env:"STORE_DRIVER" envDefault:"orm" validate:"oneof=orm postgres"`

	// Redis cache
	CacheEnabled    bool   `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60" validate:"min=1"`
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int    `env:"REDIS_PORT" envDefault:"6379" validate:"min=1,max=65535"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0" validate:"min=0"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"storefront-cache"`

	// Circuit breaker around the store
	BreakerEnabled      bool    `env:"BREAKER_ENABLED" envDefault:"true"`
	BreakerMaxRequests  uint32  `env:"BREAKER_MAX_REQUESTS" envDefault:"3"`
	BreakerTimeoutSecs  int     `env:"BREAKER_TIMEOUT_SECONDS" envDefault:"30" validate:"min=1"`
	BreakerFailureRatio float64 `env:"BREAKER_FAILURE_RATIO" envDefault:"0.6" validate:"gt=0,lte=1"`
	BreakerMinRequests  uint32  `env:"BREAKER_MIN_REQUESTS" envDefault:"5"`

	// Rate limiting on the product listing
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20" validate:"gt=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40" validate:"min=1"`

	// CORS for the JSON API
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.PostgresHost == "" {
		return nil, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.PostgresUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the cache client configuration.
func (c *Config) Redis() database.RedisConfig {
	cfg := database.DefaultRedisConfig()
	cfg.Host = c.RedisHost
	cfg.Port = c.RedisPort
	cfg.Password = c.RedisPassword
	cfg.DB = c.RedisDB
	return cfg
}

// CacheTTL returns how long catalog reads stay cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Breaker returns the circuit breaker settings for the named store.
func (c *Config) Breaker(name string) breaker.Config {
	cfg := breaker.DefaultConfig(name)
	cfg.MaxRequests = c.BreakerMaxRequests
	cfg.Timeout = time.Duration(c.BreakerTimeoutSecs) * time.Second
	cfg.FailureRatio = c.BreakerFailureRatio
	cfg.MinRequests = c.BreakerMinRequests
	return cfg
}

// Tracing returns the OpenTelemetry configuration.
func (c *Config) Tracing(serviceName string) tracing.Config {
	cfg := tracing.DefaultConfig(serviceName)
	cfg.Environment = c.Environment
	cfg.Enabled = c.OTELEnabled
	cfg.OTLPEndpoint = c.OTELEndpoint
	cfg.SampleRate = c.OTELSampleRate
	return cfg
}

// SlowQueryThreshold returns the slow query logging threshold.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}
