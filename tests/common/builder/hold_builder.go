//go:build unit || e2e

package builder

import (
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/domain/screening"
	reqdto "cinema-seat-hold/internal/handler/dto/request"
	"cinema-seat-hold/internal/usecase/lifecycle"
)

type HoldBuilder struct {
	HoldCode    string
	ScreeningID int64
	Seat        string
	Status      reservation.Status
	CreatedAt   time.Time
	PaymentRef  string
	Now         time.Time
}

func NewHoldBuilder() *HoldBuilder {
	created := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	return &HoldBuilder{
		HoldCode:    "ABCDEFGH23",
		ScreeningID: 1,
		Seat:        "C10",
		Status:      reservation.StatusHeld,
		CreatedAt:   created,
		Now:         created.Add(90 * time.Second),
	}
}

func (b *HoldBuilder) With(mutate func(*HoldBuilder)) *HoldBuilder {
	mutate(b)
	return b
}

func (b *HoldBuilder) seat() reservation.Seat {
	seat, err := reservation.ParseSeat(b.Seat)
	if err != nil {
		panic(err)
	}
	return seat
}

func (b *HoldBuilder) ParsedSeat() reservation.Seat {
	return b.seat()
}

func (b *HoldBuilder) ExpiresAt() time.Time {
	return b.CreatedAt.Add(reservation.HoldDuration)
}

// Build methods
func (b *HoldBuilder) BuildPlaceRequestDTO() reqdto.PlaceHoldRequest {
	return reqdto.PlaceHoldRequest{Seat: b.Seat}
}

func (b *HoldBuilder) BuildConfirmRequestDTO() reqdto.ConfirmHoldRequest {
	return reqdto.ConfirmHoldRequest{PaymentToken: b.PaymentRef}
}

func (b *HoldBuilder) BuildTicket() lifecycle.HoldTicket {
	return lifecycle.HoldTicket{HoldCode: b.HoldCode, ExpiresAt: b.ExpiresAt()}
}

func (b *HoldBuilder) BuildSnapshot() reservation.Snapshot {
	var (
		confirmedAt *time.Time
		paymentRef  *string
		resolvedAt  *time.Time
	)
	switch b.Status {
	case reservation.StatusConfirmed:
		at := b.Now
		ref := b.PaymentRef
		confirmedAt, paymentRef, resolvedAt = &at, &ref, &at
	case reservation.StatusCancelled:
		at := b.Now
		resolvedAt = &at
	case reservation.StatusExpired:
		at := b.ExpiresAt()
		resolvedAt = &at
	}
	res := reservation.ReconstructReservation(b.HoldCode, b.ScreeningID, b.seat(), b.Status,
		b.CreatedAt, b.ExpiresAt(), confirmedAt, paymentRef, resolvedAt)
	return res.Snapshot(b.Now)
}

type ScreeningBuilder struct {
	Screening screening.Screening
	Rows      int
	PerRow    int
}

func NewScreeningBuilder() *ScreeningBuilder {
	starts := time.Date(2025, 3, 1, 20, 30, 0, 0, time.UTC)
	return &ScreeningBuilder{
		Screening: screening.Screening{
			ID:         1,
			Title:      "Metropolis",
			RoomNumber: 1,
			RoomName:   "Sala Grande",
			StartsAt:   starts,
			EndsAt:     starts.Add(2*time.Hour + 33*time.Minute),
			PriceCents: 950,
		},
		Rows:   2,
		PerRow: 3,
	}
}

func (b *ScreeningBuilder) With(mutate func(*ScreeningBuilder)) *ScreeningBuilder {
	mutate(b)
	return b
}

func (b *ScreeningBuilder) Build() screening.Screening {
	return b.Screening
}

// BuildSeatMap marks the given seat codes and leaves the rest available.
func (b *ScreeningBuilder) BuildSeatMap(marks map[string]screening.Availability) screening.SeatMap {
	m := screening.SeatMap{Screening: b.Screening}
	for r := 0; r < b.Rows; r++ {
		for n := 1; n <= b.PerRow; n++ {
			seat, err := reservation.NewSeat(string(rune('A'+r)), n)
			if err != nil {
				panic(err)
			}
			state := screening.SeatState{Seat: seat, Availability: screening.AvailabilityFree}
			if a, ok := marks[seat.String()]; ok {
				state.Availability = a
			}
			m.Seats = append(m.Seats, state)
		}
	}
	return m
}
