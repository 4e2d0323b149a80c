package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/dto"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type OpeningHoursHandler struct {
	repo domain.Repository
}

func NewOpeningHoursHandler(repo domain.Repository) *OpeningHoursHandler {
	return &OpeningHoursHandler{repo: repo}
}

func (h *OpeningHoursHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	restaurant, err := h.repo.FindActiveRestaurant(ctx)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_opening_hours")
		return
	}

	rows, err := h.repo.ListOpeningHours(ctx, restaurant.ID)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_opening_hours")
		return
	}

	httpresp.List(c, rows)
}

// Update replaces the weekly schedule. Weekdays left out fall back to the
// default schedule.
func (h *OpeningHoursHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpeningHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rows := make([]models.OpeningHours, 0, len(req.Days))
	seen := make(map[int]bool, len(req.Days))
	for _, d := range req.Days {
		if seen[*d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once.")
			return
		}
		seen[*d.Weekday] = true

		if !validWindow(d.LunchOpen, d.LunchClose) || !validWindow(d.EveningOpen, d.EveningClose) {
			httperr.BadRequest(c, "invalid_window", "Opening must precede closing.")
			return
		}

		rows = append(rows, models.OpeningHours{
			Weekday:      *d.Weekday,
			Closed:       d.Closed,
			LunchOpen:    d.LunchOpen,
			LunchClose:   d.LunchClose,
			EveningOpen:  d.EveningOpen,
			EveningClose: d.EveningClose,
		})
	}

	restaurant, err := h.repo.FindActiveRestaurant(ctx)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_save_opening_hours")
		return
	}

	if err := h.repo.ReplaceOpeningHours(ctx, restaurant.ID, rows); err != nil {
		httperr.WriteBusiness(c, err, "failed_to_save_opening_hours")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

// validWindow accepts an absent window or one that opens before it closes.
func validWindow(open, closeAt string) bool {
	if open == "" && closeAt == "" {
		return true
	}
	o, err := domain.ParseClock(open)
	if err != nil {
		return false
	}
	cl, err := domain.ParseClock(closeAt)
	if err != nil {
		return false
	}
	return o < cl
}
