package memory

import (
	"context"
	"sync"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/lifecycle"
)

type seatKey struct {
	screeningID int64
	seat        string
}

type holdRow struct {
	code        string
	screeningID int64
	seat        reservation.Seat
	status      reservation.Status
	createdAt   time.Time
	expiresAt   time.Time
	confirmedAt *time.Time
	paymentRef  *string
	resolvedAt  *time.Time
}

// HoldStore is an in-process backend. A held row past its expiry no longer
// owns its seat, which mirrors the TTL of the networked stores.
type HoldStore struct {
	mu     sync.Mutex
	clock  clock.Clock
	seats  infra.SeatDirectory
	holds  map[string]*holdRow
	bySeat map[seatKey]string
}

func NewHoldStore(seats infra.SeatDirectory, clk clock.Clock) *HoldStore {
	return &HoldStore{
		clock:  clk,
		seats:  seats,
		holds:  make(map[string]*holdRow),
		bySeat: make(map[seatKey]string),
	}
}

func (s *HoldStore) TryHold(ctx context.Context, req lifecycle.HoldRequest) (lifecycle.HoldResult, error) {
	check, err := s.seats.CheckSeat(ctx, req.ScreeningID, req.Seat)
	if err != nil {
		return lifecycle.HoldResult{}, errs.Wrap(err, "check seat")
	}
	switch check {
	case infra.SeatNoScreening:
		return lifecycle.HoldResult{Reason: lifecycle.DenialScreeningUnknown}, nil
	case infra.SeatNoSuchSeat:
		return lifecycle.HoldResult{Reason: lifecycle.DenialSeatUnknown}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	key := seatKey{screeningID: req.ScreeningID, seat: req.Seat.String()}
	if code, ok := s.bySeat[key]; ok {
		if row := s.holds[code]; row != nil && s.ownsSeat(row, now) {
			return lifecycle.HoldResult{Reason: lifecycle.DenialAlreadyHeld}, nil
		}
	}
	if _, dup := s.holds[req.HoldCode]; dup {
		return lifecycle.HoldResult{}, infra.WrapRepoErr("hold code exists", nil, infra.KindDuplicateKey)
	}

	s.holds[req.HoldCode] = &holdRow{
		code:        req.HoldCode,
		screeningID: req.ScreeningID,
		seat:        req.Seat,
		status:      reservation.StatusHeld,
		createdAt:   now,
		expiresAt:   req.ExpiresAt,
	}
	s.bySeat[key] = req.HoldCode
	return lifecycle.HoldResult{Granted: true, HoldCode: req.HoldCode}, nil
}

func (s *HoldStore) Confirm(_ context.Context, holdCode, paymentToken string) (lifecycle.ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.holds[holdCode]
	if !ok {
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmNotFound}, nil
	}
	now := s.clock.Now()
	s.settle(row, now)

	switch row.status {
	case reservation.StatusConfirmed:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmAlreadyConfirmed}, nil
	case reservation.StatusExpired:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmExpired}, nil
	case reservation.StatusCancelled:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmNotFound}, nil
	}

	ref := paymentToken
	row.status = reservation.StatusConfirmed
	row.confirmedAt = &now
	row.paymentRef = &ref
	row.resolvedAt = &now
	return lifecycle.ConfirmResult{OK: true}, nil
}

func (s *HoldStore) Release(_ context.Context, holdCode string) (lifecycle.ReleaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.holds[holdCode]
	if !ok {
		return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseNotFound}, nil
	}
	if row.status != reservation.StatusHeld {
		return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseAlreadyTerminal}, nil
	}

	now := s.clock.Now()
	row.status = reservation.StatusCancelled
	row.resolvedAt = &now
	s.freeSeat(row)
	return lifecycle.ReleaseResult{OK: true}, nil
}

func (s *HoldStore) FindHold(_ context.Context, holdCode string) (reservation.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.holds[holdCode]
	if !ok {
		return reservation.Snapshot{}, errs.Mark(infra.WrapRepoErr("hold not found", nil, infra.KindNotFound), lifecycle.ErrNotFound)
	}
	now := s.clock.Now()
	s.settle(row, now)

	res := reservation.ReconstructReservation(row.code, row.screeningID, row.seat, row.status,
		row.createdAt, row.expiresAt, row.confirmedAt, row.paymentRef, row.resolvedAt)
	return res.Snapshot(now), nil
}

func (s *HoldStore) SeatOccupancy(_ context.Context, screeningID int64) (map[string]lifecycle.Occupancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	out := make(map[string]lifecycle.Occupancy)
	for key, code := range s.bySeat {
		if key.screeningID != screeningID {
			continue
		}
		row := s.holds[code]
		if row == nil || !s.ownsSeat(row, now) {
			continue
		}
		if row.status == reservation.StatusConfirmed {
			out[key.seat] = lifecycle.OccupancySold
		} else {
			out[key.seat] = lifecycle.OccupancyHeld
		}
	}
	return out, nil
}

func (s *HoldStore) ownsSeat(row *holdRow, now time.Time) bool {
	switch row.status {
	case reservation.StatusConfirmed:
		return true
	case reservation.StatusHeld:
		return now.Before(row.expiresAt)
	default:
		return false
	}
}

// settle applies the TTL to a held row whose time is up.
func (s *HoldStore) settle(row *holdRow, now time.Time) {
	if row.status == reservation.StatusHeld && !now.Before(row.expiresAt) {
		at := row.expiresAt
		row.status = reservation.StatusExpired
		row.resolvedAt = &at
		s.freeSeat(row)
	}
}

func (s *HoldStore) freeSeat(row *holdRow) {
	key := seatKey{screeningID: row.screeningID, seat: row.seat.String()}
	if s.bySeat[key] == row.code {
		delete(s.bySeat, key)
	}
}
