//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"cinema-seat-hold/internal/domain/screening"
	"cinema-seat-hold/internal/handler/api"
	resdto "cinema-seat-hold/internal/handler/dto/response"
	"cinema-seat-hold/internal/pkg/errs"
	"cinema-seat-hold/internal/usecase/queries"
	"cinema-seat-hold/tests/common/builder"
	"cinema-seat-hold/tests/common/httptest"
	queriesmock "cinema-seat-hold/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScreeningHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockScreeningQueries
	handler     *api.ScreeningHandler
}

func (s *ScreeningHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockScreeningQueries(s.mockCtrl)
	s.handler = api.NewScreeningHandler(s.mockQueries)

	s.router.GET("/screenings", s.handler.ListScreenings)
	s.router.GET("/screenings/:id/seats", s.handler.GetSeatMap)
}

func (s *ScreeningHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScreeningHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScreeningHandlerTestSuite))
}

// ================================================================================
// TestListScreenings
// ================================================================================

func (s *ScreeningHandlerTestSuite) TestListScreenings() {
	first := builder.NewScreeningBuilder().Build()
	second := builder.NewScreeningBuilder().With(func(b *builder.ScreeningBuilder) {
		b.Screening.ID = 2
		b.Screening.Title = "Nuovo Cinema Paradiso"
	}).Build()

	s.Run("success: returns screenings in the order given", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).Return([]screening.Screening{first, second}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings", nil)

		var body []resdto.ScreeningResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		want := []resdto.ScreeningResponse{
			{ID: 1, Title: "Metropolis", RoomNumber: 1, RoomName: "Sala Grande", StartsAt: first.StartsAt, EndsAt: first.EndsAt, PriceCents: 950},
			{ID: 2, Title: "Nuovo Cinema Paradiso", RoomNumber: 1, RoomName: "Sala Grande", StartsAt: second.StartsAt, EndsAt: second.EndsAt, PriceCents: 950},
		}
		if diff := cmp.Diff(want, body); diff != "" {
			s.T().Errorf("screenings mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: empty list is an empty array", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 503 when the catalog fails", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).
			Return(nil, errs.Mark(errors.New("connection reset"), queries.ErrCatalogFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Catalog unavailable")
	})
}

// ================================================================================
// TestGetSeatMap
// ================================================================================

func (s *ScreeningHandlerTestSuite) TestGetSeatMap() {
	sb := builder.NewScreeningBuilder()

	s.Run("success: seats with availability and summary", func() {
		seatMap := sb.BuildSeatMap(map[string]screening.Availability{
			"A2": screening.AvailabilityHeld,
			"B3": screening.AvailabilitySold,
		})
		s.mockQueries.EXPECT().SeatMap(gomock.Any(), int64(1)).Return(seatMap, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings/1/seats", nil)

		var body resdto.SeatMapResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.SeatSummary{Available: 4, Held: 1, Sold: 1}, body.Summary)
		s.Require().Len(body.Seats, 6)
		s.Equal(resdto.SeatResponse{Seat: "A2", Row: "A", Number: 2, Status: "held"}, body.Seats[1])
		s.Equal(resdto.SeatResponse{Seat: "B3", Row: "B", Number: 3, Status: "sold"}, body.Seats[5])
		s.Equal(int64(1), body.Screening.ID)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{"404 for unknown screening", errs.Wrap(queries.ErrScreeningNotFound, "find"), http.StatusNotFound, "Screening not found"},
		{"503 for catalog failure", errs.Mark(errors.New("timeout"), queries.ErrCatalogFailure), http.StatusServiceUnavailable, "Seat map unavailable"},
		{"500 for anything else", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockQueries.EXPECT().SeatMap(gomock.Any(), int64(1)).Return(screening.SeatMap{}, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings/1/seats", nil)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, "GET", "/screenings/x/seats", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid screening id")
	})
}
