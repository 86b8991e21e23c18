//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"cinema-seat-hold/internal/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertHold writes a hold row directly, bypassing the store.
func InsertHold(t *testing.T, db DBLike, code string, screeningID int64, row string, number int, status string, createdAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO holds (hold_code, screening_id, seat_row, seat_number, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		code, screeningID, row, number, status, createdAt, createdAt.Add(10*time.Minute))
	require.NoError(t, err)
}

// HoldStatus returns the raw status column of a hold.
func HoldStatus(t *testing.T, db DBLike, code string) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM holds WHERE hold_code = $1", code).Scan(&status)
	require.NoError(t, err)
	return status
}

// CountLiveHolds counts held or confirmed rows for one seat.
func CountLiveHolds(t *testing.T, db DBLike, screeningID int64, row string, number int) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `
		SELECT count(*) FROM holds
		WHERE screening_id = $1 AND seat_row = $2 AND seat_number = $3
		  AND status IN ('held', 'confirmed')`, screeningID, row, number).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB drops every hold and reseeds the demo catalog relative to now.
func ResetDB(pool *pgxpool.Pool, now time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE holds, screenings, rooms RESTART IDENTITY CASCADE"); err != nil {
		return err
	}
	return postgres.SeedDemo(ctx, pool, now)
}
