//go:generate mockgen -source=engine.go -destination=../../../tests/mock/lifecycle/engine.go -package=lifecyclemock

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
)

const expireReleaseTimeout = 5 * time.Second

// HoldService is what the presentation layer talks to.
type HoldService interface {
	PlaceHold(ctx context.Context, screeningID int64, seat reservation.Seat) (HoldTicket, error)
	Confirm(ctx context.Context, holdCode, paymentToken string) (reservation.Snapshot, error)
	Cancel(ctx context.Context, holdCode string) (reservation.Snapshot, error)
	Inspect(ctx context.Context, holdCode string) (reservation.Snapshot, error)
	Stats() Stats
}

type HoldTicket struct {
	HoldCode  string
	ExpiresAt time.Time
}

type Stats struct {
	Tracked int
	Active  int
}

// DenialError carries the backend's reason for refusing a hold.
// It matches ErrSeatUnavailable.
type DenialError struct {
	Reason HoldDenial
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("seat unavailable: %s", e.Reason)
}

func (e *DenialError) Is(target error) bool {
	return target == ErrSeatUnavailable
}

type Options struct {
	// ReleaseOnExpire calls Release on the backend when a hold expires locally.
	// Leave it off when the backend expires holds by itself.
	ReleaseOnExpire bool
	Retention       time.Duration
	SweepInterval   time.Duration
}

type Engine struct {
	backend  Backend
	history  HoldHistory
	events   EventSink
	clock    clock.Clock
	logger   *slog.Logger
	opts     Options
	registry *Registry
}

// NewEngine wires the lifecycle. history and events may be nil.
func NewEngine(
	backend Backend,
	history HoldHistory,
	events EventSink,
	codes CodeGenerator,
	clk clock.Clock,
	logger *slog.Logger,
	opts Options,
) *Engine {
	if events == nil {
		events = nopSink{}
	}
	if codes == nil {
		codes = NewRandomCodes()
	}
	e := &Engine{
		backend: backend,
		history: history,
		events:  events,
		clock:   clk,
		logger:  logger,
		opts:    opts,
	}
	e.registry = newRegistry(codes, e.newMachine)
	return e
}

func (e *Engine) newMachine(res *reservation.Reservation) *StateMachine {
	return &StateMachine{
		res:             res,
		timer:           NewHoldTimer(e.clock, e.expire),
		clock:           e.clock,
		backend:         e.backend,
		logger:          e.logger,
		releaseOnExpire: e.opts.ReleaseOnExpire,
	}
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) PlaceHold(ctx context.Context, screeningID int64, seat reservation.Seat) (HoldTicket, error) {
	if seat.IsZero() {
		return HoldTicket{}, reservation.ErrInvalidSeatCode
	}
	if screeningID <= 0 {
		return HoldTicket{}, reservation.ErrInvalidScreening
	}

	code, err := e.registry.NextCode()
	if err != nil {
		return HoldTicket{}, errs.Wrap(err, "generate hold code")
	}

	now := e.clock.Now()
	expiresAt := now.Add(reservation.HoldDuration)
	result, err := e.backend.TryHold(ctx, HoldRequest{
		HoldCode:    code,
		ScreeningID: screeningID,
		Seat:        seat,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		e.logger.Warn("backend hold failed", "screening_id", screeningID, "seat", seat.String(), "error", err.Error())
		return HoldTicket{}, errs.Mark(errs.Wrap(err, "try hold"), ErrBackendUnavailable)
	}
	if !result.Granted {
		return HoldTicket{}, &DenialError{Reason: result.Reason}
	}
	if result.HoldCode != "" {
		code = result.HoldCode
	}

	m, err := e.registry.Create(code, screeningID, seat, now)
	if err != nil {
		e.logger.Error("granted hold could not be registered", "hold_code", code, "error", err.Error())
		if _, relErr := e.backend.Release(ctx, code); relErr != nil {
			e.logger.Warn("release of unregistered hold failed", "hold_code", code, "error", relErr.Error())
		}
		return HoldTicket{}, errs.AssertionFailedf("register granted hold %s: %v", code, err)
	}
	m.timer.Start(code, expiresAt.Sub(e.clock.Now()))

	e.logger.Debug("hold placed", "hold_code", code, "screening_id", screeningID, "seat", seat.String())
	e.publish(ctx, &Event{
		Type:        EventHoldPlaced,
		HoldCode:    code,
		ScreeningID: screeningID,
		Seat:        seat.String(),
		OccurredAt:  now,
	})

	return HoldTicket{HoldCode: code, ExpiresAt: expiresAt}, nil
}

func (e *Engine) Confirm(ctx context.Context, holdCode, paymentToken string) (reservation.Snapshot, error) {
	if strings.TrimSpace(paymentToken) == "" {
		return reservation.Snapshot{}, reservation.ErrEmptyPaymentToken
	}
	m, err := e.registry.Get(holdCode)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	snap, ev, err := m.Confirm(ctx, paymentToken)
	e.publish(ctx, ev)
	return snap, err
}

func (e *Engine) Cancel(ctx context.Context, holdCode string) (reservation.Snapshot, error) {
	m, err := e.registry.Get(holdCode)
	if err != nil {
		return reservation.Snapshot{}, err
	}
	snap, ev, err := m.Cancel(ctx)
	e.publish(ctx, ev)
	return snap, err
}

// Inspect reads the in-memory reservation and falls back to history once it
// has been evicted.
func (e *Engine) Inspect(ctx context.Context, holdCode string) (reservation.Snapshot, error) {
	m, err := e.registry.Get(holdCode)
	if err == nil {
		return m.Snapshot(), nil
	}
	if e.history == nil {
		return reservation.Snapshot{}, err
	}

	snap, err := e.history.FindHold(ctx, holdCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return reservation.Snapshot{}, err
		}
		return reservation.Snapshot{}, errs.Mark(errs.Wrap(err, "find hold"), ErrBackendUnavailable)
	}
	return snap, nil
}

func (e *Engine) Stats() Stats {
	return Stats{Tracked: e.registry.Len(), Active: e.registry.Active()}
}

// expire is the single entry point for timer signals.
func (e *Engine) expire(holdCode string) {
	m, err := e.registry.Get(holdCode)
	if err != nil {
		e.logger.Error("expiry fired for unregistered hold", "hold_code", holdCode)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), expireReleaseTimeout)
	defer cancel()
	e.publish(ctx, m.Expire(ctx))
}

// SweepOnce evicts retired reservations and returns how many were removed.
func (e *Engine) SweepOnce() int {
	n := e.registry.Sweep(e.clock.Now(), e.opts.Retention)
	if n > 0 {
		e.logger.Debug("evicted retired holds", "count", n)
	}
	return n
}

// RunJanitor sweeps on every tick until ctx is done.
func (e *Engine) RunJanitor(ctx context.Context) {
	interval := e.opts.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.SweepOnce()
		}
	}
}

// Shutdown stops every pending timer. Holds stay on the backend and expire there.
func (e *Engine) Shutdown() {
	for _, m := range e.registry.list() {
		m.timer.Cancel()
	}
}

func (e *Engine) publish(ctx context.Context, ev *Event) {
	if ev == nil {
		return
	}
	if err := e.events.Publish(ctx, *ev); err != nil {
		e.logger.Warn("publish lifecycle event failed", "type", string(ev.Type), "hold_code", ev.HoldCode, "error", err.Error())
	}
}

type nopSink struct{}

func (nopSink) Publish(context.Context, Event) error { return nil }
