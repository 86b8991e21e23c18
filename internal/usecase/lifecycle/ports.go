//go:generate mockgen -source=ports.go -destination=../../../tests/mock/lifecycle/ports.go -package=lifecyclemock

package lifecycle

import (
	"context"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
)

type HoldDenial string

const (
	DenialAlreadyHeld      HoldDenial = "already_held"
	DenialSeatUnknown      HoldDenial = "seat_unknown"
	DenialScreeningUnknown HoldDenial = "screening_unknown"
)

type ConfirmFailure string

const (
	ConfirmNotFound         ConfirmFailure = "not_found"
	ConfirmExpired          ConfirmFailure = "expired"
	ConfirmAlreadyConfirmed ConfirmFailure = "already_confirmed"
)

type ReleaseFailure string

const (
	ReleaseNotFound        ReleaseFailure = "not_found"
	ReleaseAlreadyTerminal ReleaseFailure = "already_terminal"
)

type HoldRequest struct {
	// HoldCode is a proposal. A backend may mint its own and return it.
	HoldCode    string
	ScreeningID int64
	Seat        reservation.Seat
	ExpiresAt   time.Time
}

type HoldResult struct {
	Granted  bool
	HoldCode string
	Reason   HoldDenial
}

type ConfirmResult struct {
	OK     bool
	Reason ConfirmFailure
}

type ReleaseResult struct {
	OK     bool
	Reason ReleaseFailure
}

// Backend is the source of truth for seat ownership. Each call is a single
// atomic unit on the backend side. A non-nil error means the outcome is
// unknown (transport failure); a definite refusal is reported in the result.
type Backend interface {
	TryHold(ctx context.Context, req HoldRequest) (HoldResult, error)
	Confirm(ctx context.Context, holdCode, paymentToken string) (ConfirmResult, error)
	Release(ctx context.Context, holdCode string) (ReleaseResult, error)
}

// HoldHistory serves reservations that are no longer kept in memory.
type HoldHistory interface {
	FindHold(ctx context.Context, holdCode string) (reservation.Snapshot, error)
}

type Occupancy string

const (
	OccupancyHeld Occupancy = "held"
	OccupancySold Occupancy = "sold"
)

// SeatOccupancy lists the seats of a screening that are not free.
type SeatOccupancy interface {
	SeatOccupancy(ctx context.Context, screeningID int64) (map[string]Occupancy, error)
}

type EventType string

const (
	EventHoldPlaced    EventType = "hold.placed"
	EventHoldConfirmed EventType = "hold.confirmed"
	EventHoldCancelled EventType = "hold.cancelled"
	EventHoldExpired   EventType = "hold.expired"
)

type Event struct {
	Type        EventType `json:"type"`
	HoldCode    string    `json:"hold_code"`
	ScreeningID int64     `json:"screening_id"`
	Seat        string    `json:"seat"`
	PaymentRef  string    `json:"payment_ref,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventSink receives lifecycle events after the reservation lock is released.
// Publishing is best effort.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

type CodeGenerator interface {
	NewCode() (string, error)
}
