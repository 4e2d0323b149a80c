package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

type TransitionAction string

const (
	ActionConfirm  TransitionAction = "confirm"
	ActionComplete TransitionAction = "complete"
	ActionNoShow   TransitionAction = "no_show"
)

type TransitionInput struct {
	ReservationID uint
	OperatorID    *uint
	Action        TransitionAction
}

// TransitionReservation drives operator status changes through the state machine.
type TransitionReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewTransitionReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionReservation {
	return &TransitionReservation{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *TransitionReservation) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Reservation, error) {

	current, err := uc.repo.GetReservation(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}

	restaurant, err := uc.repo.GetRestaurant(ctx, current.RestaurantID)
	if err != nil {
		return nil, err
	}
	now := localNow(uc.now, restaurant)

	var out *models.Reservation
	err = retryMoved(func() error {
		return uc.repo.WithinDay(ctx, restaurant.ID, current.Date, func(tx domain.Repository) error {
			r, err := tx.GetReservation(ctx, in.ReservationID)
			if err != nil {
				return err
			}
			if r.Date != current.Date {
				current = r
				return errDayMoved
			}

			switch in.Action {
			case ActionConfirm:
				err = domain.Confirm(r, now)
			case ActionComplete:
				err = domain.Complete(r, now)
			case ActionNoShow:
				err = domain.MarkNoShow(r, now)
			default:
				err = domain.ErrInvalidTransition
			}
			if err != nil {
				return err
			}

			if err := tx.UpdateReservation(ctx, r); err != nil {
				return err
			}
			out = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, out, in.OperatorID, "reservation_"+string(in.Action), map[string]any{
		"status": out.Status,
	})

	return out, nil
}
