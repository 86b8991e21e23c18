package redisstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/infra"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/lifecycle"

	"github.com/redis/go-redis/v9"
)

// DefaultHistory is how long a hold record outlives its deadline.
const DefaultHistory = 24 * time.Hour

const scanCount = 200

// KEYS: seat, hold
// ARGV: code, ttl_ms, screening_id, seat, created_ms, expires_ms, record_ttl_ms
var holdScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[2],
	'screening_id', ARGV[3], 'seat', ARGV[4], 'status', 'held',
	'created_at', ARGV[5], 'expires_at', ARGV[6])
redis.call('PEXPIRE', KEYS[2], ARGV[7])
return 1
`)

// KEYS: hold, seat, sold
// ARGV: code, payment_ref, now_ms, seat
var confirmScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then return 'not_found' end
if status == 'confirmed' then return 'already_confirmed' end
if status == 'expired' then return 'expired' end
if status ~= 'held' then return 'not_found' end
local expires = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if tonumber(ARGV[3]) >= expires or redis.call('GET', KEYS[2]) ~= ARGV[1] then
	return 'expired'
end
redis.call('PERSIST', KEYS[2])
redis.call('SADD', KEYS[3], ARGV[4])
redis.call('HSET', KEYS[1], 'status', 'confirmed',
	'confirmed_at', ARGV[3], 'payment_ref', ARGV[2], 'resolved_at', ARGV[3])
redis.call('PERSIST', KEYS[1])
return 'ok'
`)

// KEYS: hold, seat
// ARGV: code, now_ms
var releaseScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then return 'not_found' end
if status ~= 'held' then return 'already_terminal' end
if redis.call('GET', KEYS[2]) == ARGV[1] then
	redis.call('DEL', KEYS[2])
end
redis.call('HSET', KEYS[1], 'status', 'cancelled', 'resolved_at', ARGV[2])
return 'ok'
`)

// HoldStore arbitrates seats with SET NX PX. The seat key's TTL is the
// hold deadline, so Redis frees unconfirmed seats on its own.
type HoldStore struct {
	rdb     redis.Cmdable
	seats   infra.SeatDirectory
	clock   clock.Clock
	prefix  string
	history time.Duration
}

func NewHoldStore(rdb redis.Cmdable, seats infra.SeatDirectory, clk clock.Clock, prefix string) *HoldStore {
	if prefix == "" {
		prefix = "seathold"
	}
	return &HoldStore{
		rdb:     rdb,
		seats:   seats,
		clock:   clk,
		prefix:  prefix,
		history: DefaultHistory,
	}
}

func (s *HoldStore) SeatKey(screeningID int64, seat string) string {
	return s.prefix + ":seat:" + strconv.FormatInt(screeningID, 10) + ":" + seat
}

func (s *HoldStore) HoldKey(code string) string {
	return s.prefix + ":hold:" + code
}

func (s *HoldStore) SoldKey(screeningID int64) string {
	return s.prefix + ":sold:" + strconv.FormatInt(screeningID, 10)
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

	now := s.clock.Now()
	ttl := req.ExpiresAt.Sub(now)
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	seat := req.Seat.String()

	granted, err := holdScript.Run(ctx, s.rdb,
		[]string{s.SeatKey(req.ScreeningID, seat), s.HoldKey(req.HoldCode)},
		req.HoldCode, ttl.Milliseconds(), req.ScreeningID, seat,
		now.UnixMilli(), req.ExpiresAt.UnixMilli(), (ttl + s.history).Milliseconds(),
	).Int()
	if err != nil {
		return lifecycle.HoldResult{}, infra.WrapRepoErr("run hold script", err, infra.KindCacheFailure)
	}
	if granted != 1 {
		return lifecycle.HoldResult{Reason: lifecycle.DenialAlreadyHeld}, nil
	}
	return lifecycle.HoldResult{Granted: true, HoldCode: req.HoldCode}, nil
}

func (s *HoldStore) Confirm(ctx context.Context, holdCode, paymentToken string) (lifecycle.ConfirmResult, error) {
	rec, found, err := s.load(ctx, holdCode)
	if err != nil {
		return lifecycle.ConfirmResult{}, err
	}
	if !found {
		return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmNotFound}, nil
	}

	outcome, err := confirmScript.Run(ctx, s.rdb,
		[]string{s.HoldKey(holdCode), s.SeatKey(rec.screeningID, rec.seat), s.SoldKey(rec.screeningID)},
		holdCode, paymentToken, s.clock.Now().UnixMilli(), rec.seat,
	).Text()
	if err != nil {
		return lifecycle.ConfirmResult{}, infra.WrapRepoErr("run confirm script", err, infra.KindCacheFailure)
	}
	if outcome == "ok" {
		return lifecycle.ConfirmResult{OK: true}, nil
	}
	return lifecycle.ConfirmResult{Reason: lifecycle.ConfirmFailure(outcome)}, nil
}

func (s *HoldStore) Release(ctx context.Context, holdCode string) (lifecycle.ReleaseResult, error) {
	rec, found, err := s.load(ctx, holdCode)
	if err != nil {
		return lifecycle.ReleaseResult{}, err
	}
	if !found {
		return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseNotFound}, nil
	}

	outcome, err := releaseScript.Run(ctx, s.rdb,
		[]string{s.HoldKey(holdCode), s.SeatKey(rec.screeningID, rec.seat)},
		holdCode, s.clock.Now().UnixMilli(),
	).Text()
	if err != nil {
		return lifecycle.ReleaseResult{}, infra.WrapRepoErr("run release script", err, infra.KindCacheFailure)
	}
	if outcome == "ok" {
		return lifecycle.ReleaseResult{OK: true}, nil
	}
	return lifecycle.ReleaseResult{Reason: lifecycle.ReleaseFailure(outcome)}, nil
}

func (s *HoldStore) FindHold(ctx context.Context, holdCode string) (reservation.Snapshot, error) {
	rec, found, err := s.load(ctx, holdCode)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	if !found {
		return reservation.Snapshot{}, errs.Mark(infra.WrapRepoErr("hold not found", nil, infra.KindNotFound), lifecycle.ErrNotFound)
	}
	now := s.clock.Now()
	res, err := rec.toReservation(holdCode, now)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	return res.Snapshot(now), nil
}

// SeatOccupancy lists live seat keys of the screening. Sold seats come from
// the sold set, every other live seat key is a hold.
func (s *HoldStore) SeatOccupancy(ctx context.Context, screeningID int64) (map[string]lifecycle.Occupancy, error) {
	out := make(map[string]lifecycle.Occupancy)

	sold, err := s.rdb.SMembers(ctx, s.SoldKey(screeningID)).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("read sold seats", err, infra.KindCacheFailure)
	}
	for _, seat := range sold {
		out[seat] = lifecycle.OccupancySold
	}

	prefix := s.SeatKey(screeningID, "")
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", scanCount).Result()
		if err != nil {
			return nil, infra.WrapRepoErr("scan seat keys", err, infra.KindCacheFailure)
		}
		for _, key := range keys {
			seat := strings.TrimPrefix(key, prefix)
			if _, taken := out[seat]; !taken {
				out[seat] = lifecycle.OccupancyHeld
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return out, nil
}

type record struct {
	screeningID int64
	seat        string
	status      string
	createdAt   time.Time
	expiresAt   time.Time
	confirmedAt *time.Time
	paymentRef  *string
	resolvedAt  *time.Time
}

func (s *HoldStore) load(ctx context.Context, holdCode string) (record, bool, error) {
	fields, err := s.rdb.HGetAll(ctx, s.HoldKey(holdCode)).Result()
	if err != nil {
		return record{}, false, infra.WrapRepoErr("load hold", err, infra.KindCacheFailure)
	}
	if len(fields) == 0 {
		return record{}, false, nil
	}
	rec, err := parseRecord(fields)
	if err != nil {
		return record{}, false, errs.Wrapf(err, "decode hold %s", holdCode)
	}
	return rec, true, nil
}

func parseRecord(fields map[string]string) (record, error) {
	var (
		rec record
		err error
	)
	if rec.screeningID, err = strconv.ParseInt(fields["screening_id"], 10, 64); err != nil {
		return record{}, errs.Wrap(err, "screening_id")
	}
	rec.seat = fields["seat"]
	rec.status = fields["status"]
	if rec.createdAt, err = parseMillis(fields["created_at"]); err != nil {
		return record{}, errs.Wrap(err, "created_at")
	}
	if rec.expiresAt, err = parseMillis(fields["expires_at"]); err != nil {
		return record{}, errs.Wrap(err, "expires_at")
	}
	if rec.confirmedAt, err = optionalMillis(fields, "confirmed_at"); err != nil {
		return record{}, err
	}
	if rec.resolvedAt, err = optionalMillis(fields, "resolved_at"); err != nil {
		return record{}, err
	}
	if ref, ok := fields["payment_ref"]; ok {
		rec.paymentRef = &ref
	}
	return rec, nil
}

func (r record) toReservation(holdCode string, now time.Time) (*reservation.Reservation, error) {
	seat, err := reservation.ParseSeat(r.seat)
	if err != nil {
		return nil, errs.Wrapf(err, "stored seat of hold %s", holdCode)
	}
	status := reservation.Status(r.status)
	if !status.IsValid() {
		return nil, errs.AssertionFailedf("hold %s has unknown status %q", holdCode, r.status)
	}

	resolvedAt := r.resolvedAt
	if status == reservation.StatusHeld && !now.Before(r.expiresAt) {
		status = reservation.StatusExpired
		at := r.expiresAt
		resolvedAt = &at
	}
	return reservation.ReconstructReservation(holdCode, r.screeningID, seat, status,
		r.createdAt, r.expiresAt, r.confirmedAt, r.paymentRef, resolvedAt), nil
}

func parseMillis(v string) (time.Time, error) {
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}

func optionalMillis(fields map[string]string, name string) (*time.Time, error) {
	v, ok := fields[name]
	if !ok {
		return nil, nil
	}
	t, err := parseMillis(v)
	if err != nil {
		return nil, errs.Wrap(err, name)
	}
	return &t, nil
}
