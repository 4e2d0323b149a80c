package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
)

type RestaurantHandler struct {
	repo domain.Repository
}

func NewRestaurantHandler(repo domain.Repository) *RestaurantHandler {
	return &RestaurantHandler{repo: repo}
}

// Get describes the bookable restaurant: its settings, weekly schedule and
// refund policy.
func (h *RestaurantHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	restaurant, err := h.repo.FindActiveRestaurant(ctx)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_restaurant")
		return
	}

	hours, err := h.repo.ListOpeningHours(ctx, restaurant.ID)
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_get_restaurant")
		return
	}
	restaurant.OpeningHours = hours

	httpresp.OK(c, gin.H{
		"restaurant":    restaurant,
		"refund_policy": domain.RefundPolicy(),
	})
}
