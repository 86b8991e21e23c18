package components

import (
	"fmt"

	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/infra/memory"
	"cinema-seat-hold/internal/infra/postgres"
	"cinema-seat-hold/internal/infra/redisstore"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/config"
	"cinema-seat-hold/internal/usecase/lifecycle"
	"cinema-seat-hold/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewCatalog,
		NewHoldStores,
	),
)

// SeatCatalog is a catalog that also answers seat existence for hold stores.
type SeatCatalog interface {
	queries.Catalog
	infra.SeatDirectory
}

type CatalogParams struct {
	fx.In

	Config config.Config
	Pool   *pgxpool.Pool
	Clock  clock.Clock
}

type CatalogResult struct {
	fx.Out

	Catalog   queries.Catalog
	Directory infra.SeatDirectory
}

func NewCatalog(p CatalogParams) (CatalogResult, error) {
	var catalog SeatCatalog
	switch p.Config.Catalog.Driver {
	case config.BackendPostgres:
		catalog = postgres.NewCatalog(p.Pool)
	case config.BackendMemory:
		catalog = memory.NewDemoCatalog(p.Clock.Now())
	default:
		return CatalogResult{}, fmt.Errorf("unsupported catalog driver %q", p.Config.Catalog.Driver)
	}
	return CatalogResult{Catalog: catalog, Directory: catalog}, nil
}

type HoldStoreParams struct {
	fx.In

	Config config.Config
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Seats  infra.SeatDirectory
	Clock  clock.Clock
}

type HoldStoreResult struct {
	fx.Out

	Backend   lifecycle.Backend
	History   lifecycle.HoldHistory
	Occupancy lifecycle.SeatOccupancy
}

// holdStore is what every hold backend implements.
type holdStore interface {
	lifecycle.Backend
	lifecycle.HoldHistory
	lifecycle.SeatOccupancy
}

func NewHoldStores(p HoldStoreParams) (HoldStoreResult, error) {
	var store holdStore
	switch p.Config.Hold.Backend {
	case config.BackendPostgres:
		store = postgres.NewHoldStore(p.Pool, p.Seats, p.Clock)
	case config.BackendRedis:
		store = redisstore.NewHoldStore(p.Redis, p.Seats, p.Clock, p.Config.Redis.KeyPrefix)
	case config.BackendMemory:
		store = memory.NewHoldStore(p.Seats, p.Clock)
	default:
		return HoldStoreResult{}, fmt.Errorf("unsupported hold backend %q", p.Config.Hold.Backend)
	}
	return HoldStoreResult{Backend: store, History: store, Occupancy: store}, nil
}
