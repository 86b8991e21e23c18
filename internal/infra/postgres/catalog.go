package postgres

import (
	"context"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/domain/screening"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/queries"
)

type Catalog struct {
	db DBTX
}

func NewCatalog(db DBTX) *Catalog {
	return &Catalog{db: db}
}

const screeningColumns = `
SELECT s.id, s.title, r.number, r.name, s.starts_at, s.ends_at, s.price_cents
FROM screenings s
JOIN rooms r ON r.id = s.room_id`

func (c *Catalog) Upcoming(ctx context.Context, now time.Time) ([]screening.Screening, error) {
	rows, err := c.db.Query(ctx, screeningColumns+`
WHERE s.starts_at > $1
ORDER BY s.starts_at, s.id`, now)
	if err != nil {
		return nil, infra.WrapRepoErr("query upcoming screenings", err)
	}
	defer rows.Close()

	var out []screening.Screening
	for rows.Next() {
		var s screening.Screening
		if err := rows.Scan(&s.ID, &s.Title, &s.RoomNumber, &s.RoomName, &s.StartsAt, &s.EndsAt, &s.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("scan screening", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate screenings", err)
	}
	return out, nil
}

func (c *Catalog) ScreeningByID(ctx context.Context, id int64) (screening.Screening, error) {
	var s screening.Screening
	err := c.db.QueryRow(ctx, screeningColumns+`
WHERE s.id = $1`, id).Scan(&s.ID, &s.Title, &s.RoomNumber, &s.RoomName, &s.StartsAt, &s.EndsAt, &s.PriceCents)
	if err != nil {
		return screening.Screening{}, notFoundAware("find screening", err)
	}
	return s, nil
}

func (c *Catalog) SeatLayout(ctx context.Context, screeningID int64) ([]reservation.Seat, error) {
	rowCount, perRow, err := c.roomSize(ctx, screeningID)
	if err != nil {
		return nil, notFoundAware("load room size", err)
	}

	seats := make([]reservation.Seat, 0, rowCount*perRow)
	for r := 0; r < rowCount; r++ {
		for n := 1; n <= perRow; n++ {
			seat, err := reservation.NewSeat(string(rune('A'+r)), n)
			if err != nil {
				return nil, errs.Wrapf(err, "room of screening %d", screeningID)
			}
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (c *Catalog) CheckSeat(ctx context.Context, screeningID int64, seat reservation.Seat) (infra.SeatCheck, error) {
	rowCount, perRow, err := c.roomSize(ctx, screeningID)
	if err != nil {
		if infra.IsNoRows(err) {
			return infra.SeatNoScreening, nil
		}
		return 0, infra.WrapRepoErr("check seat", err)
	}
	if seat.IsZero() {
		return infra.SeatNoSuchSeat, nil
	}
	row := int(seat.Row()[0] - 'A')
	if row >= rowCount || seat.Number() > perRow {
		return infra.SeatNoSuchSeat, nil
	}
	return infra.SeatExists, nil
}

func (c *Catalog) roomSize(ctx context.Context, screeningID int64) (rows, perRow int, err error) {
	err = c.db.QueryRow(ctx, `
SELECT r.seat_rows, r.seats_per_row
FROM screenings s
JOIN rooms r ON r.id = s.room_id
WHERE s.id = $1`, screeningID).Scan(&rows, &perRow)
	return rows, perRow, err
}

func notFoundAware(msg string, err error) error {
	wrapped := infra.WrapRepoErr(msg, err)
	if infra.IsKind(wrapped, infra.KindNotFound) {
		return errs.Mark(wrapped, queries.ErrScreeningNotFound)
	}
	return wrapped
}
