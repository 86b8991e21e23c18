//go:build e2e

package hold_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	gohttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/handler/dto/request"
	"cinema-seat-hold/internal/handler/dto/response"
	"cinema-seat-hold/tests/common/dbtest"
	"cinema-seat-hold/tests/common/httptest"
	"cinema-seat-hold/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	screeningsURL = "/api/screenings"
	holdsURL      = "/api/screenings/%d/holds"
	seatMapURL    = "/api/screenings/%d/seats"
	holdURL       = "/api/holds/%s"
	confirmURL    = "/api/holds/%s/confirm"
	cancelURL     = "/api/holds/%s/cancel"
)

type HoldSuite struct {
	e2e.SharedSuite
}

func (s *HoldSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestHoldSuite(t *testing.T) {
	suite.Run(t, new(HoldSuite))
}

func (s *HoldSuite) placeHold(t *testing.T, screeningID int64, seat string) response.HoldTicketResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(holdsURL, screeningID), request.PlaceHoldRequest{Seat: seat})
	var ticket response.HoldTicketResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &ticket)
	require.NotEmpty(t, ticket.HoldCode)
	return ticket
}

// =============================================================================
// TestScreenings
// =============================================================================

func (s *HoldSuite) TestScreenings() {
	s.Run("Normal case: upcoming screenings are listed in start order", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, screeningsURL, nil)
		var list []response.ScreeningResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)

		ids := make([]int64, len(list))
		for i, sc := range list {
			ids[i] = sc.ID
		}
		require.Equal(t, []int64{1, 2, 7}, ids)
	})

	s.Run("Normal case: seat map reflects holds and sales", func() {
		t := s.T()

		s.placeHold(t, 1, "A1")
		sold := s.placeHold(t, 1, "A2")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, sold.HoldCode), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(seatMapURL, 1), nil)
		var seatMap response.SeatMapResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &seatMap)

		require.Equal(t, response.SeatSummary{Available: 8*12 - 2, Held: 1, Sold: 1}, seatMap.Summary)
		want := []response.SeatResponse{
			{Seat: "A1", Row: "A", Number: 1, Status: "held"},
			{Seat: "A2", Row: "A", Number: 2, Status: "sold"},
			{Seat: "A3", Row: "A", Number: 3, Status: "available"},
		}
		if diff := cmp.Diff(want, seatMap.Seats[:3]); diff != "" {
			t.Errorf("seat map mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: unknown screening", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(seatMapURL, 999), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Screening not found")
	})
}

// =============================================================================
// TestHoldAndConfirm
// =============================================================================

func (s *HoldSuite) TestHoldAndConfirm() {
	s.Run("Normal case: a held seat is confirmed before the deadline", func() {
		t := s.T()

		ticket := s.placeHold(t, 1, "C10")
		require.Equal(t, "held", ticket.Status)
		require.Equal(t, 10, ticket.HoldMinutes)
		require.Equal(t, "held", dbtest.HoldStatus(t, s.DB, ticket.HoldCode))

		s.Clock.Add(9*time.Minute + 59*time.Second)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, ticket.HoldCode),
			request.ConfirmHoldRequest{PaymentToken: "PAY_E2E"})
		var hold response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &hold)

		want := response.HoldResponse{
			HoldCode:    ticket.HoldCode,
			ScreeningID: 1,
			Seat:        "C10",
			Status:      "confirmed",
			PaymentRef:  "PAY_E2E",
		}
		opts := cmpopts.IgnoreFields(response.HoldResponse{}, "CreatedAt", "ExpiresAt", "ConfirmedAt")
		if diff := cmp.Diff(want, hold, opts); diff != "" {
			t.Errorf("confirmed hold mismatch (-want +got):\n%s", diff)
		}
		require.NotNil(t, hold.ConfirmedAt)
		require.Equal(t, "confirmed", dbtest.HoldStatus(t, s.DB, ticket.HoldCode))

		// the seat stays sold after the original deadline
		s.Clock.Add(time.Hour)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(holdsURL, 1), request.PlaceHoldRequest{Seat: "C10"})
		body := httptest.AssertErrorResponse(t, w, http.StatusConflict, "Seat unavailable")
		require.Equal(t, "already_held", body.Detail["reason"])
	})

	s.Run("Normal case: confirm without a body generates a payment token", func() {
		t := s.T()

		ticket := s.placeHold(t, 2, "B3")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, ticket.HoldCode), nil)
		var hold response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &hold)
		require.Regexp(t, `^PAY_`, hold.PaymentRef)
	})

	s.Run("Error case: confirming twice", func() {
		t := s.T()

		ticket := s.placeHold(t, 1, "D4")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, ticket.HoldCode), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, ticket.HoldCode), nil)
		body := httptest.AssertErrorResponse(t, w, http.StatusConflict, "already confirmed")
		require.Equal(t, "confirmed", body.Detail["status"])
	})

	s.Run("Error case: seat and screening must exist", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(holdsURL, 1), request.PlaceHoldRequest{Seat: "Z99"})
		body := httptest.AssertErrorResponse(t, w, http.StatusConflict, "Seat unavailable")
		require.Equal(t, "seat_unknown", body.Detail["reason"])

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(holdsURL, 999), request.PlaceHoldRequest{Seat: "A1"})
		body = httptest.AssertErrorResponse(t, w, http.StatusConflict, "Seat unavailable")
		require.Equal(t, "screening_unknown", body.Detail["reason"])

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(holdURL, "NOSUCHCODE"), nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Hold not found")
	})
}

// =============================================================================
// TestExpiry
// =============================================================================

func (s *HoldSuite) TestExpiry() {
	s.Run("Normal case: an unconfirmed hold expires at the deadline and frees the seat", func() {
		t := s.T()

		ticket := s.placeHold(t, 7, "E5")
		s.Clock.Add(reservation.HoldDuration)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(holdURL, ticket.HoldCode), nil)
		var hold response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &hold)
		require.Equal(t, "expired", hold.Status)
		require.Zero(t, hold.RemainingSeconds)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, ticket.HoldCode), nil)
		httptest.AssertErrorResponse(t, w, http.StatusGone, "Hold expired")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, ticket.HoldCode), nil)
		httptest.AssertErrorResponse(t, w, http.StatusGone, "Hold expired")

		again := s.placeHold(t, 7, "E5")
		require.NotEqual(t, ticket.HoldCode, again.HoldCode)
		require.Equal(t, 1, dbtest.CountLiveHolds(t, s.DB, 7, "E", 5))
		require.Equal(t, "expired", dbtest.HoldStatus(t, s.DB, ticket.HoldCode))
	})

	s.Run("Normal case: countdown is reported in rounded up minutes", func() {
		t := s.T()

		ticket := s.placeHold(t, 7, "F6")
		s.Clock.Add(9*time.Minute + 30*time.Second)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(holdURL, ticket.HoldCode), nil)
		var hold response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &hold)
		require.Equal(t, "held", hold.Status)
		require.EqualValues(t, 30, hold.RemainingSeconds)
		require.Equal(t, 1, hold.RemainingMinutes)
	})
}

// =============================================================================
// TestCancel
// =============================================================================

func (s *HoldSuite) TestCancel() {
	s.Run("Normal case: cancel releases the seat", func() {
		t := s.T()

		ticket := s.placeHold(t, 1, "G7")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, ticket.HoldCode), nil)
		var hold response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &hold)
		require.Equal(t, "cancelled", hold.Status)
		require.Equal(t, "cancelled", dbtest.HoldStatus(t, s.DB, ticket.HoldCode))

		s.placeHold(t, 1, "G7")
	})

	s.Run("Error case: cancel twice and cancel after confirm", func() {
		t := s.T()

		ticket := s.placeHold(t, 1, "H8")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, ticket.HoldCode), nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, ticket.HoldCode), nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already cancelled")

		sold := s.placeHold(t, 1, "H9")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, sold.HoldCode), nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, sold.HoldCode), nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already confirmed")
	})
}

// =============================================================================
// TestConcurrentHolds
// =============================================================================

func (s *HoldSuite) TestConcurrentHolds() {
	s.Run("Edge case: only one of many concurrent requests gets the seat", func() {
		t := s.T()
		const workers = 16

		body, err := json.Marshal(request.PlaceHoldRequest{Seat: "B2"})
		require.NoError(t, err)

		codes := make(chan int, workers)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := gohttptest.NewRequest(http.MethodPost, fmt.Sprintf(holdsURL, 2), bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := gohttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		counts := map[int]int{}
		for code := range codes {
			counts[code]++
		}
		require.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: workers - 1}, counts)
		require.Equal(t, 1, dbtest.CountLiveHolds(t, s.DB, 2, "B", 2))
	})
}
