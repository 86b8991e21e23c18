//go:build unit

package memory_test

import (
	"context"
	"testing"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/infra/memory"
	"cinema-seat-hold/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	c := memory.NewDemoCatalog(t0)

	t.Run("upcoming is ordered and excludes started screenings", func(t *testing.T) {
		list, err := c.Upcoming(ctx, t0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i := 1; i < len(list); i++ {
			assert.True(t, list[i-1].StartsAt.Before(list[i].StartsAt))
		}

		later, err := c.Upcoming(ctx, list[0].StartsAt)
		require.NoError(t, err)
		assert.Len(t, later, 2)

		none, err := c.Upcoming(ctx, t0.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("layout covers the whole room", func(t *testing.T) {
		seats, err := c.SeatLayout(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, seats, 60)
		assert.Equal(t, "A1", seats[0].String())
		assert.Equal(t, "F10", seats[len(seats)-1].String())
	})

	t.Run("unknown screening", func(t *testing.T) {
		_, err := c.ScreeningByID(ctx, 404)
		assert.ErrorIs(t, err, queries.ErrScreeningNotFound)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = c.SeatLayout(ctx, 404)
		assert.ErrorIs(t, err, queries.ErrScreeningNotFound)
	})

	t.Run("check seat", func(t *testing.T) {
		inside, _ := reservation.ParseSeat("F10")
		outside, _ := reservation.ParseSeat("F11")

		got, err := c.CheckSeat(ctx, 2, inside)
		require.NoError(t, err)
		assert.Equal(t, infra.SeatExists, got)

		got, _ = c.CheckSeat(ctx, 2, outside)
		assert.Equal(t, infra.SeatNoSuchSeat, got)

		got, _ = c.CheckSeat(ctx, 404, inside)
		assert.Equal(t, infra.SeatNoScreening, got)
	})
}

func TestCatalog_Entries(t *testing.T) {
	entries := memory.NewDemoCatalog(t0).Entries()
	require.Len(t, entries, 3)

	ids := []int64{entries[0].Screening.ID, entries[1].Screening.ID, entries[2].Screening.ID}
	assert.Equal(t, []int64{1, 2, 7}, ids)
	assert.Equal(t, entries[0].Room, entries[2].Room, "screenings 1 and 7 share a room")
	assert.Equal(t, 6, entries[1].Room.Rows)
}
