package api

import (
	"errors"
	"net/http"

	resdto "cinema-seat-hold/internal/handler/dto/response"
	"cinema-seat-hold/internal/handler/httperr"
	"cinema-seat-hold/internal/usecase/lifecycle"
	"cinema-seat-hold/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	q queries.ScreeningQueries
}

func NewScreeningHandler(q queries.ScreeningQueries) *ScreeningHandler {
	return &ScreeningHandler{q: q}
}

// @Summary List screenings
// @Description Upcoming screenings ordered by start time
// @Tags screenings
// @Produce json
// @Success 200 {array} resdto.ScreeningResponse
// @Failure 503 {object} httperr.Response
// @Router /screenings [get]
func (h *ScreeningHandler) ListScreenings(c *gin.Context) {
	list, err := h.q.ListUpcoming(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Catalog unavailable", nil)
		return
	}
	res, err := resdto.FromScreenings(list)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Seat map
// @Description Availability of every seat of a screening
// @Tags screenings
// @Produce json
// @Param id path int true "Screening ID"
// @Success 200 {object} resdto.SeatMapResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /screenings/{id}/seats [get]
func (h *ScreeningHandler) GetSeatMap(c *gin.Context) {
	screeningID, ok := screeningIDParam(c)
	if !ok {
		return
	}

	seatMap, err := h.q.SeatMap(c.Request.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrScreeningNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Screening not found", nil)
		case errors.Is(err, queries.ErrCatalogFailure), errors.Is(err, lifecycle.ErrBackendUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Seat map unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	res, err := resdto.FromSeatMap(seatMap)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
