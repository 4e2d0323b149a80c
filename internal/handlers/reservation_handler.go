package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	"github.com/BruksfildServices01/table-booking/internal/middleware"
	ucReservation "github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	create     *ucReservation.CreateReservation
	update     *ucReservation.UpdateReservation
	cancel     *ucReservation.CancelReservation
	get        *ucReservation.GetReservation
	transition *ucReservation.TransitionReservation
	listByDate *ucReservation.ListReservationsByDate
}

func NewReservationHandler(
	create *ucReservation.CreateReservation,
	update *ucReservation.UpdateReservation,
	cancel *ucReservation.CancelReservation,
	get *ucReservation.GetReservation,
	transition *ucReservation.TransitionReservation,
	listByDate *ucReservation.ListReservationsByDate,
) *ReservationHandler {
	return &ReservationHandler{
		create:     create,
		update:     update,
		cancel:     cancel,
		get:        get,
		transition: transition,
		listByDate: listByDate,
	}
}

func locatorByID(c *gin.Context, id uint) ucReservation.Locator {
	return ucReservation.Locator{
		ID:       id,
		UserID:   middleware.UserID(c),
		Operator: middleware.IsOperator(c),
	}
}

// ======================================================
// CREATE (guest or authenticated)
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.UserID(c)
	if userID == nil && (strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.ClientPhone) == "") {
		httperr.BadRequest(c, "guest_contact_required", "Guests must give a name and a phone number.")
		return
	}

	r, err := h.create.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		UserID:          userID,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_create_reservation")
		return
	}

	c.JSON(http.StatusCreated, r)
}

// ======================================================
// BY ID (owner or operator)
// ======================================================

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	r, err := h.get.Execute(c.Request.Context(), locatorByID(c, id))
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_reservation")
		return
	}

	httpresp.OK(c, r)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.update.Execute(c.Request.Context(), updateInput(locatorByID(c, id), req))
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_update_reservation")
		return
	}

	httpresp.OK(c, r)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req dto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		bindError(c, err)
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), ucReservation.CancelReservationInput{
		Locator: locatorByID(c, id),
		Reason:  req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_cancel_reservation")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// OPERATOR
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	rows, err := h.listByDate.Execute(c.Request.Context(), 0, date)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_list_reservations")
		return
	}

	httpresp.List(c, rows)
}

func (h *ReservationHandler) transitionTo(action ucReservation.TransitionAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		r, err := h.transition.Execute(c.Request.Context(), ucReservation.TransitionInput{
			ReservationID: id,
			OperatorID:    middleware.UserID(c),
			Action:        action,
		})
		if err != nil {
			httperr.WriteBusiness(c, err, "failed_to_update_status")
			return
		}

		httpresp.OK(c, r)
	}
}

func (h *ReservationHandler) Confirm() gin.HandlerFunc {
	return h.transitionTo(ucReservation.ActionConfirm)
}

func (h *ReservationHandler) Complete() gin.HandlerFunc {
	return h.transitionTo(ucReservation.ActionComplete)
}

func (h *ReservationHandler) NoShow() gin.HandlerFunc {
	return h.transitionTo(ucReservation.ActionNoShow)
}

func updateInput(loc ucReservation.Locator, req dto.UpdateReservationRequest) ucReservation.UpdateReservationInput {
	return ucReservation.UpdateReservationInput{
		Locator:         loc,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		DurationMinutes: req.DurationMinutes,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	}
}
