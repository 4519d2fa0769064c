// Command seed loads the Burhani Associates demo catalog into postgres.
//
// Usage:
//
//	go run ./cmd/seed
//
// It reads the same environment as the server (POSTGRES_*, KAFKA_*). Rows are
// upserted under stable ids, so running it twice leaves one copy.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/burhaniassociates/storefront/internal/config"
	"github.com/burhaniassociates/storefront/internal/event"
	"github.com/burhaniassociates/storefront/migrations"
	pkgconfig "github.com/burhaniassociates/storefront/pkg/config"
	"github.com/burhaniassociates/storefront/pkg/database"
	pkgkafka "github.com/burhaniassociates/storefront/pkg/kafka"
	"github.com/burhaniassociates/storefront/pkg/logger"
)

func main() {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New(event.SourceSeeder, cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	start := time.Now()

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return err
	}

	s := &seeder{db: pool, logger: log, now: time.Now}
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), nil, log)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("close kafka producer", slog.String("error", err.Error()))
			}
		}()
		s.publisher = event.NewProducer(producer, event.SourceSeeder, log)
	}

	res, err := s.run(ctx, defaultCatalog)
	if err != nil {
		return err
	}

	log.Info("catalog seeded",
		slog.Int("brands", res.Brands),
		slog.Int("categories", res.Categories),
		slog.Int("products", res.Products),
		slog.Bool("published", s.publisher != nil),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
