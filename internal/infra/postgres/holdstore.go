package postgres

import (
	"context"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/lifecycle"
)

// HoldStore keeps holds in the holds table. The partial unique index on live
// seats arbitrates concurrent requests, and a held row whose expires_at has
// passed no longer counts as live.
type HoldStore struct {
	db    DBTX
	seats infra.SeatDirectory
	clock clock.Clock
}

func NewHoldStore(db DBTX, seats infra.SeatDirectory, clk clock.Clock) *HoldStore {
	return &HoldStore{db: db, seats: seats, clock: clk}
}

const lapseSeatSQL = `
UPDATE holds
SET status = 'expired', resolved_at = expires_at
WHERE screening_id = $1 AND seat_row = $2 AND seat_number = $3
  AND status = 'held' AND expires_at <= $4`

const insertHoldSQL = `
INSERT INTO holds (hold_code, screening_id, seat_row, seat_number, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, 'held', $5, $6)
ON CONFLICT (screening_id, seat_row, seat_number) WHERE status IN ('held', 'confirmed') DO NOTHING
RETURNING hold_code`

func (s *HoldStore) TryHold(ctx context.Context, req lifecycle.HoldRequest) (lifecycle.HoldResult, error) {
	check, err := s.seats.CheckSeat(ctx, req.ScreeningID, req.Seat)
	if err != nil {
		return lifecycle.HoldResult{}, errs.Wrap(err, "check seat")
	}
	if reason, denied := denialFor(check); denied {
		return lifecycle.HoldResult{Reason: reason}, nil
	}

	now := s.clock.Now()
	if _, err := s.db.Exec(ctx, lapseSeatSQL, req.ScreeningID, req.Seat.Row(), req.Seat.Number(), now); err != nil {
		return lifecycle.HoldResult{}, infra.WrapRepoErr("lapse expired hold", err)
	}

	var code string
	err = s.db.QueryRow(ctx, insertHoldSQL,
		req.HoldCode, req.ScreeningID, req.Seat.Row(), req.Seat.Number(), now, req.ExpiresAt,
	).Scan(&code)
	if err != nil {
		if infra.IsNoRows(err) {
			return lifecycle.HoldResult{Reason: lifecycle.DenialAlreadyHeld}, nil
		}
		return lifecycle.HoldResult{}, infra.WrapRepoErr("insert hold", err)
	}
	return lifecycle.HoldResult{Granted: true, HoldCode: code}, nil
}

const confirmHoldSQL = `
UPDATE holds
SET status = 'confirmed', confirmed_at = $3, payment_ref = $2, resolved_at = $3
WHERE hold_code = $1 AND status = 'held' AND expires_at > $3
RETURNING hold_code`

func (s *HoldStore) Confirm(ctx context.Context, holdCode, paymentToken string) (lifecycle.ConfirmResult, error) {
	now := s.clock.Now()

	var code string
	err := s.db.QueryRow(ctx, confirmHoldSQL, holdCode, paymentToken, now).Scan(&code)
	if err == nil {
		return lifecycle.ConfirmResult{OK: true}, nil
	}
	if !infra.IsNoRows(err) {
		return lifecycle.ConfirmResult{}, infra.WrapRepoErr("confirm hold", err)
	}

	row, found, err := s.load(ctx, holdCode)
	if err != nil {
		return lifecycle.ConfirmResult{}, err
	}
	if !found {
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmNotFound}, nil
	}
	switch row.effectiveStatus(now) {
	case reservation.StatusConfirmed:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmAlreadyConfirmed}, nil
	case reservation.StatusExpired:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmExpired}, nil
	default:
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmNotFound}, nil
	}
}

const releaseHoldSQL = `
UPDATE holds
SET status = 'cancelled', resolved_at = $2
WHERE hold_code = $1 AND status = 'held'
RETURNING hold_code`

func (s *HoldStore) Release(ctx context.Context, holdCode string) (lifecycle.ReleaseResult, error) {
	var code string
	err := s.db.QueryRow(ctx, releaseHoldSQL, holdCode, s.clock.Now()).Scan(&code)
	if err == nil {
		return lifecycle.ReleaseResult{OK: true}, nil
	}
	if !infra.IsNoRows(err) {
		return lifecycle.ReleaseResult{}, infra.WrapRepoErr("release hold", err)
	}

	_, found, err := s.load(ctx, holdCode)
	if err != nil {
		return lifecycle.ReleaseResult{}, err
	}
	if !found {
		return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseNotFound}, nil
	}
	return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseAlreadyTerminal}, nil
}

func (s *HoldStore) FindHold(ctx context.Context, holdCode string) (reservation.Snapshot, error) {
	row, found, err := s.load(ctx, holdCode)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	if !found {
		return reservation.Snapshot{}, errs.Mark(infra.WrapRepoErr("hold not found", nil, infra.KindNotFound), lifecycle.ErrNotFound)
	}
	now := s.clock.Now()
	res, err := row.toReservation(now)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	return res.Snapshot(now), nil
}

const occupancySQL = `
SELECT seat_row, seat_number, status
FROM holds
WHERE screening_id = $1
  AND (status = 'confirmed' OR (status = 'held' AND expires_at > $2))`

func (s *HoldStore) SeatOccupancy(ctx context.Context, screeningID int64) (map[string]lifecycle.Occupancy, error) {
	rows, err := s.db.Query(ctx, occupancySQL, screeningID, s.clock.Now())
	if err != nil {
		return nil, infra.WrapRepoErr("query occupancy", err)
	}
	defer rows.Close()

	out := make(map[string]lifecycle.Occupancy)
	for rows.Next() {
		var (
			row    string
			number int
			status string
		)
		if err := rows.Scan(&row, &number, &status); err != nil {
			return nil, infra.WrapRepoErr("scan occupancy", err)
		}
		seat, err := reservation.NewSeat(row, number)
		if err != nil {
			return nil, errs.Wrapf(err, "stored seat %s%d", row, number)
		}
		out[seat.String()] = occupancyOf(reservation.Status(status))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate occupancy", err)
	}
	return out, nil
}

const selectHoldSQL = `
SELECT hold_code, screening_id, seat_row, seat_number, status,
       created_at, expires_at, confirmed_at, payment_ref, resolved_at
FROM holds
WHERE hold_code = $1`

func (s *HoldStore) load(ctx context.Context, holdCode string) (holdRow, bool, error) {
	var r holdRow
	err := s.db.QueryRow(ctx, selectHoldSQL, holdCode).Scan(
		&r.Code, &r.ScreeningID, &r.SeatRow, &r.SeatNumber, &r.Status,
		&r.CreatedAt, &r.ExpiresAt, &r.ConfirmedAt, &r.PaymentRef, &r.ResolvedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return holdRow{}, false, nil
		}
		return holdRow{}, false, infra.WrapRepoErr("load hold", err)
	}
	return r, true, nil
}

type holdRow struct {
	Code        string
	ScreeningID int64
	SeatRow     string
	SeatNumber  int
	Status      string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	ConfirmedAt *time.Time
	PaymentRef  *string
	ResolvedAt  *time.Time
}

// effectiveStatus reports a held row past its expiry as expired.
func (r holdRow) effectiveStatus(now time.Time) reservation.Status {
	status := reservation.Status(r.Status)
	if status == reservation.StatusHeld && !now.Before(r.ExpiresAt) {
		return reservation.StatusExpired
	}
	return status
}

func (r holdRow) toReservation(now time.Time) (*reservation.Reservation, error) {
	seat, err := reservation.NewSeat(r.SeatRow, r.SeatNumber)
	if err != nil {
		return nil, errs.Wrapf(err, "stored seat of hold %s", r.Code)
	}
	status := r.effectiveStatus(now)
	if !status.IsValid() {
		return nil, errs.AssertionFailedf("hold %s has unknown status %q", r.Code, r.Status)
	}

	resolvedAt := r.ResolvedAt
	if status == reservation.StatusExpired && resolvedAt == nil {
		at := r.ExpiresAt
		resolvedAt = &at
	}
	return reservation.ReconstructReservation(r.Code, r.ScreeningID, seat, status,
		r.CreatedAt, r.ExpiresAt, r.ConfirmedAt, r.PaymentRef, resolvedAt), nil
}

func denialFor(check infra.SeatCheck) (lifecycle.HoldDenial, bool) {
	switch check {
	case infra.SeatNoScreening:
		return lifecycle.DenialScreeningUnknown, true
	case infra.SeatNoSuchSeat:
		return lifecycle.DenialSeatUnknown, true
	default:
		return "", false
	}
}

func occupancyOf(status reservation.Status) lifecycle.Occupancy {
	if status == reservation.StatusConfirmed {
		return lifecycle.OccupancySold
	}
	return lifecycle.OccupancyHeld
}
