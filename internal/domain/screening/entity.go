package screening

import (
	"time"

	"cinema-seat-hold/internal/domain/reservation"
)

type Screening struct {
	ID         int64
	Title      string
	RoomNumber int
	RoomName   string
	StartsAt   time.Time
	EndsAt     time.Time
	PriceCents int64
}

// IsUpcoming reports whether seats can still be held for the screening.
func (s Screening) IsUpcoming(now time.Time) bool {
	return s.StartsAt.After(now)
}

type Availability string

const (
	AvailabilityFree Availability = "available"
	AvailabilityHeld Availability = "held"
	AvailabilitySold Availability = "sold"
)

func (a Availability) String() string {
	return string(a)
}

type SeatState struct {
	Seat         reservation.Seat
	Availability Availability
}

// SeatMap is the per-seat availability of one screening, ordered by row then number.
type SeatMap struct {
	Screening Screening
	Seats     []SeatState
}

func (m SeatMap) CountBy(a Availability) int {
	n := 0
	for _, s := range m.Seats {
		if s.Availability == a {
			n++
		}
	}
	return n
}
