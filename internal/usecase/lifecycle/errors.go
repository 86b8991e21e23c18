package lifecycle

import (
	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/pkg/errs"
)

var (
	// ErrSeatUnavailable: the backend refused the hold. Pick another seat.
	ErrSeatUnavailable = errs.New("seat unavailable")
	// ErrNotFound: unknown hold code.
	ErrNotFound = errs.New("hold not found")
	// ErrHoldExpired: terminal by timeout. Start a new hold.
	ErrHoldExpired = reservation.ErrHoldExpired
	// ErrInvalidTransition: terminal by resolution. The action already happened.
	ErrInvalidTransition = reservation.ErrInvalidTransition
	// ErrBackendRejected: the backend refused confirm or release. Local state is unchanged, so a retry is safe.
	ErrBackendRejected = errs.New("backend rejected the request")
	// ErrBackendUnavailable: the backend could not be reached. Local state is unchanged.
	ErrBackendUnavailable = errs.New("backend unavailable")
)

var (
	errCodeCollision = errs.New("hold code already registered")
	errCodeExhausted = errs.New("could not generate a free hold code")
)
