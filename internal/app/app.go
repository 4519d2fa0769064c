package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/burhaniassociates/storefront/internal/catalog"
	"github.com/burhaniassociates/storefront/internal/config"
	"github.com/burhaniassociates/storefront/internal/content"
	"github.com/burhaniassociates/storefront/internal/event"
	handler "github.com/burhaniassociates/storefront/internal/handler/http"
	"github.com/burhaniassociates/storefront/internal/repository"
	"github.com/burhaniassociates/storefront/internal/repository/breaker"
	"github.com/burhaniassociates/storefront/internal/repository/cache"
	"github.com/burhaniassociates/storefront/internal/repository/orm"
	"github.com/burhaniassociates/storefront/internal/repository/postgres"
	"github.com/burhaniassociates/storefront/migrations"
	"github.com/burhaniassociates/storefront/pkg/database"
	"github.com/burhaniassociates/storefront/pkg/health"
	pkgkafka "github.com/burhaniassociates/storefront/pkg/kafka"
	"github.com/burhaniassociates/storefront/pkg/middleware"
	"github.com/burhaniassociates/storefront/pkg/tracing"
)

// ServiceName labels logs, metrics and traces.
const ServiceName = "storefront"

const (
	eventDedupTTL    = 24 * time.Hour
	eventDedupPrefix = "storefront:events:"
	rateLimiterTTL   = 10 * time.Minute
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	consumer       *pkgkafka.Consumer
	limiter        *middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	site, err := content.Load(cfg.SiteContentFile)
	if err != nil {
		return nil, fmt.Errorf("load site content: %w", err)
	}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(ServiceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		a := &App{logger: logger, tracerShutdown: tracerShutdown}
		a.abort()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	a := &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		tracerShutdown: tracerShutdown,
	}
	if err := a.init(ctx, site, reg); err != nil {
		a.abort()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, site *content.Site, reg *prometheus.Registry) error {
	cfg, logger := a.cfg, a.logger

	if err := database.RegisterPoolMetrics(reg, a.pool, ServiceName); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, a.pool, migrations.FS, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}

	if cfg.CacheEnabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis(), logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))
	}

	repo, invalidator, err := buildCatalogRepository(store, cfg, a.redis, reg, logger)
	if err != nil {
		return err
	}

	// Catalog change events only matter when there is a cache to drop.
	if cfg.KafkaEnabled && invalidator != nil {
		metrics, err := pkgkafka.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("register kafka metrics: %w", err)
		}
		consumer := event.NewConsumer(invalidator, logger)
		dedup := pkgkafka.NewRedisIdempotencyStore(a.redis, eventDedupPrefix, eventDedupTTL)

		a.consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaGroupID,
			Topic:    event.TopicCatalogChanged,
			MinBytes: 1,
			MaxBytes: 10e6,
		}, pkgkafka.IdempotentHandler(dedup, consumer.HandleCatalogChanged, logger), metrics, logger)
	}

	svc, err := catalog.NewService(repo, logger, reg)
	if err != nil {
		return fmt.Errorf("create catalog service: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})
	if a.redis != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}
	if a.consumer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	httpMetrics, err := middleware.NewHTTPMetrics(reg, ServiceName)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, rateLimiterTTL)

	// HTTP router.
	router, err := handler.NewRouter(handler.RouterConfig{
		ServiceName:       ServiceName,
		Catalog:           svc,
		Site:              site,
		Health:            healthHandler,
		Metrics:           httpMetrics,
		Gatherer:          reg,
		RateLimiter:       a.limiter,
		CORS:              middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// openStore returns the catalog repository for STORE_DRIVER.
func (a *App) openStore() (repository.CatalogRepository, error) {
	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		a.logger.Info("catalog store: pgx")
		return postgres.NewCatalogRepository(a.pool), nil
	default:
		db, err := orm.Open(stdlib.OpenDBFromPool(a.pool))
		if err != nil {
			return nil, fmt.Errorf("open gorm: %w", err)
		}
		a.logger.Info("catalog store: gorm")
		return orm.NewCatalogRepository(db), nil
	}
}

// buildCatalogRepository layers the circuit breaker and the cache over store.
// The cache sits outside the breaker so cached pages keep serving while the
// breaker is open. The returned invalidator is nil without a cache.
func buildCatalogRepository(
	store repository.CatalogRepository,
	cfg *config.Config,
	client redis.Cmdable,
	reg prometheus.Registerer,
	logger *slog.Logger,
) (repository.CatalogRepository, event.Invalidator, error) {
	repo := store

	if cfg.BreakerEnabled {
		b, err := breaker.NewCatalogRepository(repo, cfg.Breaker("catalog-store"), reg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("create store breaker: %w", err)
		}
		repo = b
	}

	if cfg.CacheEnabled && client != nil {
		c := cache.NewCatalogRepository(repo, client, cfg.CacheTTL(), logger)
		return c, c, nil
	}
	return repo, nil, nil
}

// Run starts the HTTP server and the event consumer, then blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Start HTTP server.
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Start the catalog change consumer.
	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("catalog event consumer: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka consumer
// 4. Redis client and PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.limiter.Close()

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close the Kafka consumer.
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("catalog event consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 4. Close stores.
	if err := a.closeStores(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// abort releases whatever a failed NewApp already started. Errors are logged
// only; the construction error is what the caller sees.
func (a *App) abort() {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Warn("catalog event consumer close error", slog.String("error", err.Error()))
		}
	}
	_ = a.closeStores()
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Warn("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
}

func (a *App) closeStores() error {
	var err error
	if a.redis != nil {
		if err = a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return err
}
