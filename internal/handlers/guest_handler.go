package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

// GuestHandler serves the management link sent to guests: the token in the
// path is the only credential.
type GuestHandler struct {
	update *ucReservation.UpdateReservation
	cancel *ucReservation.CancelReservation
	get    *ucReservation.GetReservation
}

func NewGuestHandler(
	update *ucReservation.UpdateReservation,
	cancel *ucReservation.CancelReservation,
	get *ucReservation.GetReservation,
) *GuestHandler {
	return &GuestHandler{update: update, cancel: cancel, get: get}
}

func tokenLocator(c *gin.Context) ucReservation.Locator {
	return ucReservation.Locator{Token: c.Param("token")}
}

func (h *GuestHandler) Get(c *gin.Context) {
	r, err := h.get.Execute(c.Request.Context(), tokenLocator(c))
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_reservation")
		return
	}
	httpresp.OK(c, r)
}

func (h *GuestHandler) Update(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.update.Execute(c.Request.Context(), updateInput(tokenLocator(c), req))
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_update_reservation")
		return
	}
	httpresp.OK(c, r)
}

func (h *GuestHandler) Cancel(c *gin.Context) {
	var req dto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		bindError(c, err)
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), ucReservation.CancelReservationInput{
		Locator: tokenLocator(c),
		Reason:  req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_cancel_reservation")
		return
	}
	httpresp.OK(c, res)
}
