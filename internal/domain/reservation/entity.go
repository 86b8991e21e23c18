package reservation

import (
	"time"

	"cinema-seat-hold/internal/pkg/errs"
)

// HoldDuration is how long a granted hold stays valid.
const HoldDuration = 10 * time.Minute

var (
	ErrHoldExpired       = errs.New("hold expired")
	ErrInvalidTransition = errs.New("invalid transition")
	ErrInvalidSeatCode   = errs.New("invalid seat code")
	ErrEmptyHoldCode     = errs.New("hold code is empty")
	ErrInvalidScreening  = errs.New("invalid screening id")
	ErrEmptyPaymentToken = errs.New("payment token is empty")
)

type Reservation struct {
	holdCode    string
	screeningID int64
	seat        Seat
	status      Status
	createdAt   time.Time
	expiresAt   time.Time
	confirmedAt *time.Time
	paymentRef  *string
	resolvedAt  *time.Time
}

func NewReservation(holdCode string, screeningID int64, seat Seat, now time.Time) (*Reservation, error) {
	if holdCode == "" {
		return nil, ErrEmptyHoldCode
	}
	if screeningID <= 0 {
		return nil, ErrInvalidScreening
	}
	if seat.IsZero() {
		return nil, ErrInvalidSeatCode
	}
	return &Reservation{
		holdCode:    holdCode,
		screeningID: screeningID,
		seat:        seat,
		status:      StatusHeld,
		createdAt:   now,
		expiresAt:   now.Add(HoldDuration),
	}, nil
}

func ReconstructReservation(
	holdCode string,
	screeningID int64,
	seat Seat,
	status Status,
	createdAt, expiresAt time.Time,
	confirmedAt *time.Time,
	paymentRef *string,
	resolvedAt *time.Time,
) *Reservation {
	return &Reservation{
		holdCode:    holdCode,
		screeningID: screeningID,
		seat:        seat,
		status:      status,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
		confirmedAt: confirmedAt,
		paymentRef:  paymentRef,
		resolvedAt:  resolvedAt,
	}
}

func (r *Reservation) HoldCode() string        { return r.holdCode }
func (r *Reservation) ScreeningID() int64      { return r.screeningID }
func (r *Reservation) Seat() Seat              { return r.seat }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) ExpiresAt() time.Time    { return r.expiresAt }
func (r *Reservation) ConfirmedAt() *time.Time { return r.confirmedAt }
func (r *Reservation) PaymentRef() *string     { return r.paymentRef }
func (r *Reservation) ResolvedAt() *time.Time  { return r.resolvedAt }

func (r *Reservation) IsHeld() bool {
	return r.status == StatusHeld
}

// DeadlinePassed is true from expiresAt onwards.
func (r *Reservation) DeadlinePassed(now time.Time) bool {
	return !now.Before(r.expiresAt)
}

// CheckConfirm evaluates the confirm guard without mutating anything.
func (r *Reservation) CheckConfirm(now time.Time) error {
	switch r.status {
	case StatusHeld:
		if r.DeadlinePassed(now) {
			return ErrHoldExpired
		}
		return nil
	case StatusExpired:
		return ErrHoldExpired
	default:
		return ErrInvalidTransition
	}
}

func (r *Reservation) Confirm(now time.Time, paymentRef string) error {
	if err := r.CheckConfirm(now); err != nil {
		return err
	}
	ref := paymentRef
	at := now
	r.status = StatusConfirmed
	r.confirmedAt = &at
	r.paymentRef = &ref
	r.resolvedAt = &at
	return nil
}

// CheckCancel evaluates the cancel guard. A held reservation can be
// cancelled at any time until something else resolves it.
func (r *Reservation) CheckCancel() error {
	switch r.status {
	case StatusHeld:
		return nil
	case StatusExpired:
		return ErrHoldExpired
	default:
		return ErrInvalidTransition
	}
}

func (r *Reservation) Cancel(now time.Time) error {
	if err := r.CheckCancel(); err != nil {
		return err
	}
	at := now
	r.status = StatusCancelled
	r.resolvedAt = &at
	return nil
}

// Expire moves a held reservation to expired and reports whether it did.
// Any other state is left alone.
func (r *Reservation) Expire(now time.Time) bool {
	if r.status != StatusHeld {
		return false
	}
	at := now
	r.status = StatusExpired
	r.resolvedAt = &at
	return true
}

// Remaining is the time left on the hold, zero once it is no longer held.
func (r *Reservation) Remaining(now time.Time) time.Duration {
	if r.status != StatusHeld {
		return 0
	}
	if d := r.expiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Snapshot is an immutable copy of a reservation at one instant.
type Snapshot struct {
	HoldCode    string
	ScreeningID int64
	Seat        Seat
	Status      Status
	CreatedAt   time.Time
	ExpiresAt   time.Time
	ConfirmedAt *time.Time
	PaymentRef  string
	ResolvedAt  *time.Time
	Remaining   time.Duration
}

func (r *Reservation) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		HoldCode:    r.holdCode,
		ScreeningID: r.screeningID,
		Seat:        r.seat,
		Status:      r.status,
		CreatedAt:   r.createdAt,
		ExpiresAt:   r.expiresAt,
		Remaining:   r.Remaining(now),
	}
	if r.confirmedAt != nil {
		at := *r.confirmedAt
		s.ConfirmedAt = &at
	}
	if r.paymentRef != nil {
		s.PaymentRef = *r.paymentRef
	}
	if r.resolvedAt != nil {
		at := *r.resolvedAt
		s.ResolvedAt = &at
	}
	return s
}

// RemainingMinutes rounds the countdown up, so a hold with 30s left shows 1.
func (s Snapshot) RemainingMinutes() int {
	if s.Remaining <= 0 {
		return 0
	}
	return int((s.Remaining + time.Minute - 1) / time.Minute)
}
