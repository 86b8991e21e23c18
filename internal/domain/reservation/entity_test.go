//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"cinema-seat-hold/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

func newHeld(t *testing.T) *reservation.Reservation {
	t.Helper()
	seat, err := reservation.ParseSeat("C10")
	require.NoError(t, err)
	r, err := reservation.NewReservation("X1", 7, seat, created)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("starts held with a fixed deadline", func(t *testing.T) {
		r := newHeld(t)

		assert.Equal(t, reservation.StatusHeld, r.Status())
		assert.Equal(t, created.Add(10*time.Minute), r.ExpiresAt())
		assert.Nil(t, r.ConfirmedAt())
		assert.Nil(t, r.PaymentRef())
		assert.Nil(t, r.ResolvedAt())
	})

	seat, _ := reservation.ParseSeat("A1")
	testCases := []struct {
		name        string
		code        string
		screeningID int64
		seat        reservation.Seat
		errIs       error
	}{
		{name: "empty code NG", code: "", screeningID: 1, seat: seat, errIs: reservation.ErrEmptyHoldCode},
		{name: "zero screening NG", code: "K", screeningID: 0, seat: seat, errIs: reservation.ErrInvalidScreening},
		{name: "zero seat NG", code: "K", screeningID: 1, errIs: reservation.ErrInvalidSeatCode},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := reservation.NewReservation(tc.code, tc.screeningID, tc.seat, created)
			require.ErrorIs(t, err, tc.errIs)
			assert.Nil(t, r)
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Run("one millisecond before the deadline succeeds", func(t *testing.T) {
		r := newHeld(t)
		at := r.ExpiresAt().Add(-time.Millisecond)

		require.NoError(t, r.Confirm(at, "PAY_ABCD1234"))

		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		require.NotNil(t, r.ConfirmedAt())
		assert.Equal(t, at, *r.ConfirmedAt())
		require.NotNil(t, r.PaymentRef())
		assert.Equal(t, "PAY_ABCD1234", *r.PaymentRef())
	})

	t.Run("exactly at the deadline is expired", func(t *testing.T) {
		r := newHeld(t)
		assert.ErrorIs(t, r.Confirm(r.ExpiresAt(), "tok"), reservation.ErrHoldExpired)
		assert.Equal(t, reservation.StatusHeld, r.Status(), "guard failure does not mutate")
	})

	t.Run("one millisecond after the deadline is expired", func(t *testing.T) {
		r := newHeld(t)
		assert.ErrorIs(t, r.Confirm(r.ExpiresAt().Add(time.Millisecond), "tok"), reservation.ErrHoldExpired)
		assert.Nil(t, r.PaymentRef())
	})

	t.Run("after expire", func(t *testing.T) {
		r := newHeld(t)
		require.True(t, r.Expire(r.ExpiresAt()))
		assert.ErrorIs(t, r.Confirm(created, "tok"), reservation.ErrHoldExpired)
	})

	t.Run("twice", func(t *testing.T) {
		r := newHeld(t)
		require.NoError(t, r.Confirm(created, "first"))
		assert.ErrorIs(t, r.Confirm(created, "second"), reservation.ErrInvalidTransition)
		assert.Equal(t, "first", *r.PaymentRef())
	})
}

func TestCancel(t *testing.T) {
	t.Run("held to cancelled", func(t *testing.T) {
		r := newHeld(t)
		require.NoError(t, r.Cancel(created.Add(time.Minute)))
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Nil(t, r.ConfirmedAt())
		assert.Nil(t, r.PaymentRef())
	})

	t.Run("second cancel is an invalid transition", func(t *testing.T) {
		r := newHeld(t)
		require.NoError(t, r.Cancel(created))
		assert.ErrorIs(t, r.Cancel(created), reservation.ErrInvalidTransition)
	})

	t.Run("confirmed keeps its payment reference", func(t *testing.T) {
		r := newHeld(t)
		require.NoError(t, r.Confirm(created, "PAY_1"))
		assert.ErrorIs(t, r.Cancel(created), reservation.ErrInvalidTransition)
		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		assert.Equal(t, "PAY_1", *r.PaymentRef())
	})

	t.Run("expired reports hold expired", func(t *testing.T) {
		r := newHeld(t)
		r.Expire(r.ExpiresAt())
		assert.ErrorIs(t, r.Cancel(created), reservation.ErrHoldExpired)
	})
}

func TestExpire(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(*reservation.Reservation)
		changed bool
		want    reservation.Status
	}{
		{name: "held expires", prepare: func(*reservation.Reservation) {}, changed: true, want: reservation.StatusExpired},
		{name: "confirmed is untouched", prepare: func(r *reservation.Reservation) { _ = r.Confirm(created, "p") }, want: reservation.StatusConfirmed},
		{name: "cancelled is untouched", prepare: func(r *reservation.Reservation) { _ = r.Cancel(created) }, want: reservation.StatusCancelled},
		{name: "expired is untouched", prepare: func(r *reservation.Reservation) { r.Expire(created) }, want: reservation.StatusExpired},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newHeld(t)
			tc.prepare(r)
			assert.Equal(t, tc.changed, r.Expire(r.ExpiresAt()))
			assert.Equal(t, tc.want, r.Status())
			assert.True(t, r.Status().IsTerminal())
		})
	}
}

func TestSnapshot(t *testing.T) {
	r := newHeld(t)
	now := created.Add(9*time.Minute + 30*time.Second)

	snap := r.Snapshot(now)
	seat, _ := reservation.ParseSeat("C10")
	want := reservation.Snapshot{
		HoldCode:    "X1",
		ScreeningID: 7,
		Seat:        seat,
		Status:      reservation.StatusHeld,
		CreatedAt:   created,
		ExpiresAt:   created.Add(10 * time.Minute),
		Remaining:   30 * time.Second,
	}
	if diff := cmp.Diff(want, snap, cmp.AllowUnexported(reservation.Seat{})); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, snap.RemainingMinutes())

	require.NoError(t, r.Confirm(now, "PAY_X"))
	assert.Equal(t, reservation.StatusHeld, snap.Status, "earlier snapshot is not affected")

	after := r.Snapshot(now)
	assert.Equal(t, time.Duration(0), after.Remaining)
	assert.Equal(t, "PAY_X", after.PaymentRef)
	assert.Equal(t, 0, after.RemainingMinutes())
}
