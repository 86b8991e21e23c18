//go:generate mockgen -source=screening.go -destination=../../../tests/mock/queries/screening.go -package=queriesmock

package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/domain/screening"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/lifecycle"
)

var (
	ErrScreeningNotFound = errs.New("screening not found")
	ErrCatalogFailure    = errs.New("catalog unavailable")
)

// Catalog is the read side of screenings and room layouts.
// Unknown screenings are reported with an error matching ErrScreeningNotFound.
type Catalog interface {
	Upcoming(ctx context.Context, now time.Time) ([]screening.Screening, error)
	ScreeningByID(ctx context.Context, id int64) (screening.Screening, error)
	SeatLayout(ctx context.Context, screeningID int64) ([]reservation.Seat, error)
}

type ScreeningQueries interface {
	ListUpcoming(ctx context.Context) ([]screening.Screening, error)
	SeatMap(ctx context.Context, screeningID int64) (screening.SeatMap, error)
}

type screeningQueries struct {
	catalog   Catalog
	occupancy lifecycle.SeatOccupancy
	clock     clock.Clock
}

func NewScreeningQueries(catalog Catalog, occupancy lifecycle.SeatOccupancy, clk clock.Clock) ScreeningQueries {
	return &screeningQueries{
		catalog:   catalog,
		occupancy: occupancy,
		clock:     clk,
	}
}

func (q *screeningQueries) ListUpcoming(ctx context.Context) ([]screening.Screening, error) {
	list, err := q.catalog.Upcoming(ctx, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list upcoming screenings"), ErrCatalogFailure)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].StartsAt.Before(list[j].StartsAt) })
	return list, nil
}

// SeatMap merges the room layout with live occupancy from the hold backend.
func (q *screeningQueries) SeatMap(ctx context.Context, screeningID int64) (screening.SeatMap, error) {
	sc, err := q.catalog.ScreeningByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, ErrScreeningNotFound) {
			return screening.SeatMap{}, err
		}
		return screening.SeatMap{}, errs.Mark(errs.Wrap(err, "find screening"), ErrCatalogFailure)
	}

	layout, err := q.catalog.SeatLayout(ctx, screeningID)
	if err != nil {
		return screening.SeatMap{}, errs.Mark(errs.Wrap(err, "load seat layout"), ErrCatalogFailure)
	}

	taken, err := q.occupancy.SeatOccupancy(ctx, screeningID)
	if err != nil {
		return screening.SeatMap{}, errs.Mark(errs.Wrap(err, "load seat occupancy"), lifecycle.ErrBackendUnavailable)
	}

	seats := make([]screening.SeatState, 0, len(layout))
	for _, seat := range layout {
		state := screening.SeatState{Seat: seat, Availability: screening.AvailabilityFree}
		switch taken[seat.String()] {
		case lifecycle.OccupancyHeld:
			state.Availability = screening.AvailabilityHeld
		case lifecycle.OccupancySold:
			state.Availability = screening.AvailabilitySold
		}
		seats = append(seats, state)
	}
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i].Seat, seats[j].Seat
		if a.Row() != b.Row() {
			return a.Row() < b.Row()
		}
		return a.Number() < b.Number()
	})

	return screening.SeatMap{Screening: sc, Seats: seats}, nil
}
