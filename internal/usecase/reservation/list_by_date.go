package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/dto"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(repo domain.Repository) *ListReservationsByDate {
	return &ListReservationsByDate{repo: repo}
}

// Execute returns the day sheet, cancelled bookings included, ordered by time.
func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	restaurantID uint,
	date string,
) ([]dto.ReservationListDTO, error) {

	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	restaurant, err := resolveRestaurant(ctx, uc.repo, restaurantID)
	if err != nil {
		return nil, err
	}

	reservations, err := uc.repo.FindReservations(ctx, domain.ReservationFilter{
		RestaurantID:     restaurant.ID,
		Date:             date,
		IncludeCancelled: true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		item := dto.ReservationListDTO{
			ID:              r.ID,
			Date:            r.Date,
			Time:            r.Time,
			DurationMinutes: r.DurationMinutes,
			PartySize:       r.PartySize,
			Status:          r.Status,
			PaymentStatus:   r.PaymentStatus,
			ClientName:      r.ClientName,
			ClientPhone:     r.ClientPhone,
			SpecialRequests: r.SpecialRequests,
		}
		if r.Table != nil {
			item.TableNumber = r.Table.Number
		}
		out = append(out, item)
	}

	return out, nil
}
