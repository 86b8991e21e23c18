package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/errs"
)

// StateMachine owns one reservation. Every transition runs under mu, and the
// backend call for a transition completes before mu is released, so local
// state never runs ahead of the backend.
type StateMachine struct {
	mu    sync.Mutex
	res   *reservation.Reservation
	timer *HoldTimer

	clock           clock.Clock
	backend         Backend
	logger          *slog.Logger
	releaseOnExpire bool
}

func (m *StateMachine) HoldCode() string {
	// immutable, no lock needed
	return m.res.HoldCode()
}

func (m *StateMachine) Confirm(ctx context.Context, paymentToken string) (reservation.Snapshot, *Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if err := m.res.CheckConfirm(now); err != nil {
		var ev *Event
		if m.res.IsHeld() {
			// deadline passed before the timer got the lock
			ev = m.expireLocked(ctx, now)
		}
		return m.res.Snapshot(now), ev, err
	}

	result, err := m.backend.Confirm(ctx, m.res.HoldCode(), paymentToken)
	if err != nil {
		return m.res.Snapshot(now), nil, errs.Mark(errs.Wrap(err, "confirm hold"), ErrBackendUnavailable)
	}
	if !result.OK {
		return m.res.Snapshot(now), nil, errs.Wrapf(ErrBackendRejected, "confirm: %s", result.Reason)
	}

	if err := m.res.Confirm(now, paymentToken); err != nil {
		return m.res.Snapshot(now), nil, errs.AssertionFailedf("hold %s confirmed by backend but not locally: %v", m.res.HoldCode(), err)
	}
	m.timer.Cancel()
	m.logger.Debug("hold confirmed", "hold_code", m.res.HoldCode())

	ev := m.event(EventHoldConfirmed, now)
	return m.res.Snapshot(now), &ev, nil
}

func (m *StateMachine) Cancel(ctx context.Context) (reservation.Snapshot, *Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if err := m.res.CheckCancel(); err != nil {
		return m.res.Snapshot(now), nil, err
	}

	result, err := m.backend.Release(ctx, m.res.HoldCode())
	if err != nil {
		return m.res.Snapshot(now), nil, errs.Mark(errs.Wrap(err, "release hold"), ErrBackendUnavailable)
	}
	if !result.OK {
		return m.res.Snapshot(now), nil, errs.Wrapf(ErrBackendRejected, "release: %s", result.Reason)
	}

	if err := m.res.Cancel(now); err != nil {
		return m.res.Snapshot(now), nil, errs.AssertionFailedf("hold %s released by backend but not locally: %v", m.res.HoldCode(), err)
	}
	m.timer.Cancel()
	m.logger.Debug("hold cancelled", "hold_code", m.res.HoldCode())

	ev := m.event(EventHoldCancelled, now)
	return m.res.Snapshot(now), &ev, nil
}

// Expire handles the timer signal. It is a no-op unless the reservation is
// still held.
func (m *StateMachine) Expire(ctx context.Context) *Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.expireLocked(ctx, m.clock.Now())
}

func (m *StateMachine) expireLocked(ctx context.Context, now time.Time) *Event {
	if !m.res.Expire(now) {
		return nil
	}
	m.timer.Cancel()
	m.logger.Info("hold expired", "hold_code", m.res.HoldCode(), "seat", m.res.Seat().String())

	if m.releaseOnExpire {
		result, err := m.backend.Release(ctx, m.res.HoldCode())
		switch {
		case err != nil:
			m.logger.Warn("release after expiry failed", "hold_code", m.res.HoldCode(), "error", err.Error())
		case !result.OK:
			m.logger.Debug("release after expiry refused", "hold_code", m.res.HoldCode(), "reason", string(result.Reason))
		}
	}

	ev := m.event(EventHoldExpired, now)
	return &ev
}

func (m *StateMachine) Snapshot() reservation.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.res.Snapshot(m.clock.Now())
}

func (m *StateMachine) isHeld() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.res.IsHeld()
}

// retiredBefore reports whether the reservation reached a terminal state at or before cutoff.
func (m *StateMachine) retiredBefore(cutoff time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := m.res.ResolvedAt()
	return at != nil && !at.After(cutoff)
}

func (m *StateMachine) event(t EventType, at time.Time) Event {
	ev := Event{
		Type:        t,
		HoldCode:    m.res.HoldCode(),
		ScreeningID: m.res.ScreeningID(),
		Seat:        m.res.Seat().String(),
		OccurredAt:  at,
	}
	if ref := m.res.PaymentRef(); ref != nil {
		ev.PaymentRef = *ref
	}
	return ev
}
