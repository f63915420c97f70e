// Command seed loads the default service catalog. It is safe to run
// repeatedly: existing rows are updated in place.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/config"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository/postgres"
	"github.com/Pavlo-fo95/ls-resort-backend/migrations"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/database"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/logger"
)

type upserter interface {
	Upsert(ctx context.Context, it *domain.ServiceItem) error
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("ls-resort-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pgCfg := database.DefaultPostgresConfig(cfg.DatabaseURL)
	pgCfg.MaxConns = 2
	pgCfg.MinConns = 1
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	n, err := seedCatalog(ctx, postgres.NewServiceItemRepository(pool), defaultCatalog, log)
	if err != nil {
		return err
	}
	log.Info("catalog seeded", slog.Int("items", n))
	return nil
}

func seedCatalog(ctx context.Context, repo upserter, items []domain.ServiceItem, log *slog.Logger) (int, error) {
	for i := range items {
		it := items[i]
		it.IsActive = true
		if err := repo.Upsert(ctx, &it); err != nil {
			return i, fmt.Errorf("upsert %s %q: %w", it.Type, it.Title, err)
		}
		log.Debug("service item upserted",
			slog.Int64("id", it.ID),
			slog.String("type", it.Type),
			slog.String("title", it.Title),
		)
	}
	return len(items), nil
}
