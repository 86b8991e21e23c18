package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"cinema-seat-hold/internal/domain/reservation"
	reqdto "cinema-seat-hold/internal/handler/dto/request"
	resdto "cinema-seat-hold/internal/handler/dto/response"
	"cinema-seat-hold/internal/handler/httperr"
	"cinema-seat-hold/internal/usecase/lifecycle"

	"github.com/gin-gonic/gin"
)

type HoldHandler struct {
	holds lifecycle.HoldService
}

func NewHoldHandler(holds lifecycle.HoldService) *HoldHandler {
	return &HoldHandler{holds: holds}
}

// @Summary Hold a seat
// @Description Place a 10 minute hold on one seat of a screening
// @Tags holds
// @Accept json
// @Produce json
// @Param id path int true "Screening ID"
// @Param request body reqdto.PlaceHoldRequest true "Seat to hold"
// @Success 201 {object} resdto.HoldTicketResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /screenings/{id}/holds [post]
func (h *HoldHandler) PlaceHold(c *gin.Context) {
	screeningID, ok := screeningIDParam(c)
	if !ok {
		return
	}

	var req reqdto.PlaceHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	seat, err := req.ToSeat()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid seat code", gin.H{"seat": req.Seat})
		return
	}

	ticket, err := h.holds.PlaceHold(c.Request.Context(), screeningID, seat)
	if err != nil {
		abortWithLifecycleError(c, err, reservation.Snapshot{})
		return
	}

	c.Header("Location", "/api/holds/"+ticket.HoldCode)
	c.JSON(http.StatusCreated, resdto.FromHoldTicket(ticket, screeningID, seat))
}

// @Summary Get hold
// @Description Current state of a hold and its countdown
// @Tags holds
// @Produce json
// @Param code path string true "Hold code"
// @Success 200 {object} resdto.HoldResponse
// @Failure 404 {object} httperr.Response
// @Router /holds/{code} [get]
func (h *HoldHandler) GetHold(c *gin.Context) {
	snap, err := h.holds.Inspect(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithLifecycleError(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

// @Summary Confirm hold
// @Description Confirm a hold as a purchase. A payment token is generated when none is sent.
// @Tags holds
// @Accept json
// @Produce json
// @Param code path string true "Hold code"
// @Param request body reqdto.ConfirmHoldRequest false "Payment token"
// @Success 200 {object} resdto.HoldResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /holds/{code}/confirm [post]
func (h *HoldHandler) ConfirmHold(c *gin.Context) {
	var req reqdto.ConfirmHoldRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	snap, err := h.holds.Confirm(c.Request.Context(), c.Param("code"), req.TokenOrNew())
	if err != nil {
		abortWithLifecycleError(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

// @Summary Cancel hold
// @Description Release a held seat
// @Tags holds
// @Produce json
// @Param code path string true "Hold code"
// @Success 200 {object} resdto.HoldResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /holds/{code}/cancel [post]
func (h *HoldHandler) CancelHold(c *gin.Context) {
	snap, err := h.holds.Cancel(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithLifecycleError(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

func screeningIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = reservation.ErrInvalidScreening
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid screening id", nil)
		return 0, false
	}
	return id, true
}

// abortWithLifecycleError maps the lifecycle taxonomy to a status. snap, when
// known, tells the caller where the hold stands.
func abortWithLifecycleError(c *gin.Context, err error, snap reservation.Snapshot) {
	var detail any
	if snap.HoldCode != "" {
		detail = gin.H{"hold_code": snap.HoldCode, "status": snap.Status.String()}
	}

	var denial *lifecycle.DenialError
	switch {
	case errors.As(err, &denial):
		httperr.AbortWithError(c, http.StatusConflict, err, "Seat unavailable", gin.H{"reason": string(denial.Reason)})
	case errors.Is(err, lifecycle.ErrSeatUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Seat unavailable", nil)
	case errors.Is(err, lifecycle.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Hold not found", nil)
	case errors.Is(err, lifecycle.ErrHoldExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Hold expired", detail)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Hold is already "+snap.Status.String(), detail)
	case errors.Is(err, reservation.ErrInvalidSeatCode), errors.Is(err, reservation.ErrInvalidScreening),
		errors.Is(err, reservation.ErrEmptyPaymentToken):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, lifecycle.ErrBackendRejected), errors.Is(err, lifecycle.ErrBackendUnavailable):
		slog.Warn("hold backend failure", "path", c.Request.URL.Path, "error", err.Error())
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservation backend unavailable, try again", detail)
	default:
		slog.Error("unexpected lifecycle error", "path", c.Request.URL.Path, "error", err.Error())
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
