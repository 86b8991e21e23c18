package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cinema-seat-hold/internal/infra/db"
	"cinema-seat-hold/internal/infra/postgres"
	"cinema-seat-hold/internal/infra/redisstore"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const migrateTimeout = 30 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewRedis,
	),
)

// NewDB connects, migrates and seeds Postgres. It returns a nil pool when
// neither the hold backend nor the catalog uses Postgres.
func NewDB(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (*pgxpool.Pool, error) {
	if !cfg.NeedsPostgres() {
		return nil, nil
	}
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	if err := postgres.Migrate(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}
	if err := postgres.SeedDemo(ctx, pool, clk.Now()); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("database ready", "host", cfg.DB.Host, "database", cfg.DB.DBName)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// NewRedis returns a nil client unless HOLD_BACKEND=redis.
func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if cfg.Hold.Backend != config.BackendRedis {
		return nil, nil
	}
	client, cleanup, err := redisstore.Connect(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}
