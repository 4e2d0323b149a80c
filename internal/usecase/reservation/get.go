package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type GetReservation struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetReservation(repo domain.Repository) *GetReservation {
	return &GetReservation{repo: repo, now: time.Now}
}

// Execute resolves the reservation by guest token or by id, with the same
// access rules as update and cancel.
func (uc *GetReservation) Execute(
	ctx context.Context,
	loc Locator,
) (*models.Reservation, error) {
	return locate(ctx, uc.repo, loc, uc.now())
}
