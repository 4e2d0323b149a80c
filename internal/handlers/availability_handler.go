package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

type AvailabilityHandler struct {
	availability *ucReservation.Availability
}

func NewAvailabilityHandler(availability *ucReservation.Availability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func bindSlotQuery(c *gin.Context) (ucReservation.SlotQuery, bool) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return ucReservation.SlotQuery{}, false
	}
	if q.Time == "" {
		httperr.BadRequest(c, "missing_time", "Query parameter time is required.")
		return ucReservation.SlotQuery{}, false
	}

	return ucReservation.SlotQuery{
		Date:            q.Date,
		Time:            q.Time,
		PartySize:       q.PartySize,
		DurationMinutes: q.DurationMinutes,
	}, true
}

// Day returns the full slot grid for a date and party size.
func (h *AvailabilityHandler) Day(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	day, err := h.availability.GetDayAvailability(c.Request.Context(), ucReservation.DayQuery{
		Date:      q.Date,
		PartySize: q.PartySize,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_availability")
		return
	}

	httpresp.OK(c, day)
}

func (h *AvailabilityHandler) Check(c *gin.Context) {
	q, ok := bindSlotQuery(c)
	if !ok {
		return
	}

	available, err := h.availability.CheckSlotAvailability(c.Request.Context(), q)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_check_availability")
		return
	}

	httpresp.OK(c, gin.H{
		"date":       q.Date,
		"time":       q.Time,
		"party_size": q.PartySize,
		"available":  available,
	})
}

func (h *AvailabilityHandler) Tables(c *gin.Context) {
	q, ok := bindSlotQuery(c)
	if !ok {
		return
	}

	tables, err := h.availability.AvailableTables(c.Request.Context(), q)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_list_tables")
		return
	}

	httpresp.List(c, tables)
}
