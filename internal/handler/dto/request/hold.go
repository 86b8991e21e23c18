package request

import (
	"strings"

	"cinema-seat-hold/internal/domain/reservation"
)

type PlaceHoldRequest struct {
	Seat string `json:"seat" binding:"required"`
}

func (r PlaceHoldRequest) ToSeat() (reservation.Seat, error) {
	return reservation.ParseSeat(r.Seat)
}

type ConfirmHoldRequest struct {
	PaymentToken string `json:"payment_token" binding:"omitempty,max=128"`
}

// TokenOrNew returns the caller's token, or a fresh PAY_ token when none was sent.
func (r ConfirmHoldRequest) TokenOrNew() string {
	if token := strings.TrimSpace(r.PaymentToken); token != "" {
		return token
	}
	return reservation.NewPaymentToken()
}
