package postgres

import (
	"context"
	_ "embed"
	"time"

	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/infra/memory"
	"cinema-seat-hold/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return infra.WrapRepoErr("apply schema", err)
	}
	return nil
}

// SeedDemo loads the demo rooms and screenings into an empty database.
// It does nothing when screenings already exist.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool, now time.Time) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM screenings`).Scan(&count); err != nil {
		return infra.WrapRepoErr("count screenings", err)
	}
	if count > 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		demo := memory.NewDemoCatalog(now)
		roomIDs := make(map[int]int)

		for _, entry := range demo.Entries() {
			roomID, ok := roomIDs[entry.Room.Number]
			if !ok {
				err := tx.QueryRow(ctx, `
					INSERT INTO rooms (number, name, seat_rows, seats_per_row)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (number) DO UPDATE SET name = EXCLUDED.name
					RETURNING id`,
					entry.Room.Number, entry.Room.Name, entry.Room.Rows, entry.Room.PerRow,
				).Scan(&roomID)
				if err != nil {
					return infra.WrapRepoErr("insert room", err)
				}
				roomIDs[entry.Room.Number] = roomID
			}

			s := entry.Screening
			_, err := tx.Exec(ctx, `
				INSERT INTO screenings (id, room_id, title, starts_at, ends_at, price_cents)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				s.ID, roomID, s.Title, s.StartsAt, s.EndsAt, s.PriceCents,
			)
			if err != nil {
				return infra.WrapRepoErr("insert screening", err)
			}
		}

		_, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('screenings', 'id'), (SELECT max(id) FROM screenings))`)
		return errs.Wrap(err, "reset screening sequence")
	})
}
