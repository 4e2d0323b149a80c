package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
)

type CancelReservationInput struct {
	Locator
	Reason string
}

// Refund is set only when the reservation carried a deposit.
type CancelResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Refund      *domain.RefundQuote `json:"refund,omitempty"`
}

type CancelReservation struct {
	repo   domain.Repository
	locker domain.DayLocker
	audit  *audit.Dispatcher

	now func() time.Time
}

func NewCancelReservation(
	repo domain.Repository,
	locker domain.DayLocker,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

// Execute cancels the reservation. Nothing is released explicitly: availability
// is always computed from live statuses, so the table frees up by itself.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelReservationInput,
) (*CancelResult, error) {

	current, err := locate(ctx, uc.repo, in.Locator, uc.now())
	if err != nil {
		return nil, err
	}
	if domain.Status(current.Status) == domain.StatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	restaurant, err := uc.repo.GetRestaurant(ctx, current.RestaurantID)
	if err != nil {
		return nil, err
	}
	now := localNow(uc.now, restaurant)

	var cancelled *models.Reservation
	err = retryMoved(func() error {
		return withinLockedDay(ctx, uc.locker, uc.repo, restaurant.ID, current.Date, func(tx domain.Repository) error {
			r, err := tx.GetReservation(ctx, current.ID)
			if err != nil {
				return err
			}
			if r.Date != current.Date {
				current = r
				return errDayMoved
			}
			if err := domain.Cancel(r, in.Reason, now); err != nil {
				return err
			}
			if err := tx.UpdateReservation(ctx, r); err != nil {
				return err
			}
			cancelled = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := &CancelResult{Reservation: cancelled}

	if cancelled.DepositAmount > 0 {
		startsAt, err := domain.StartsAt(cancelled, timezone.Location(restaurant.Timezone))
		if err != nil {
			return nil, err
		}
		quote := domain.CalculateRefundAmount(startsAt, cancelled.DepositAmount, in.Reason, now)
		out.Refund = &quote
	}

	dispatch(uc.audit, cancelled, in.UserID, "reservation_cancelled", map[string]any{
		"reason": in.Reason,
		"refund": out.Refund,
	})

	return out, nil
}
