package infra

import (
	"context"

	"cinema-seat-hold/internal/domain/reservation"
)

type SeatCheck int

const (
	SeatExists SeatCheck = iota
	SeatNoScreening
	SeatNoSuchSeat
)

// SeatDirectory tells hold stores whether a screening and seat exist, for
// stores that keep no catalog of their own.
type SeatDirectory interface {
	CheckSeat(ctx context.Context, screeningID int64, seat reservation.Seat) (SeatCheck, error)
}
