package response

import (
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/usecase/lifecycle"
)

type HoldTicketResponse struct {
	HoldCode    string    `json:"hold_code"`
	ScreeningID int64     `json:"screening_id"`
	Seat        string    `json:"seat"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	HoldMinutes int       `json:"hold_minutes"`
}

func FromHoldTicket(t lifecycle.HoldTicket, screeningID int64, seat reservation.Seat) *HoldTicketResponse {
	return &HoldTicketResponse{
		HoldCode:    t.HoldCode,
		ScreeningID: screeningID,
		Seat:        seat.String(),
		Status:      reservation.StatusHeld.String(),
		ExpiresAt:   t.ExpiresAt,
		HoldMinutes: int(reservation.HoldDuration / time.Minute),
	}
}

type HoldResponse struct {
	HoldCode         string     `json:"hold_code"`
	ScreeningID      int64      `json:"screening_id"`
	Seat             string     `json:"seat"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	PaymentRef       string     `json:"payment_ref,omitempty"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	RemainingMinutes int        `json:"remaining_minutes"`
}

func FromSnapshot(s reservation.Snapshot) *HoldResponse {
	return &HoldResponse{
		HoldCode:         s.HoldCode,
		ScreeningID:      s.ScreeningID,
		Seat:             s.Seat.String(),
		Status:           s.Status.String(),
		CreatedAt:        s.CreatedAt,
		ExpiresAt:        s.ExpiresAt,
		ConfirmedAt:      s.ConfirmedAt,
		PaymentRef:       s.PaymentRef,
		RemainingSeconds: int64(s.Remaining / time.Second),
		RemainingMinutes: s.RemainingMinutes(),
	}
}
