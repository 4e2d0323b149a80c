package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// UpdateReservationInput patches a reservation; nil fields are left alone.
type UpdateReservationInput struct {
	Locator

	Date            *string
	Time            *string
	PartySize       *int
	DurationMinutes *int

	ClientName      *string
	ClientEmail     *string
	ClientPhone     *string
	Notes           *string
	SpecialRequests *string
}

type UpdateReservation struct {
	repo   domain.Repository
	locker domain.DayLocker
	audit  *audit.Dispatcher

	now func() time.Time
}

func NewUpdateReservation(
	repo domain.Repository,
	locker domain.DayLocker,
	audit *audit.Dispatcher,
) *UpdateReservation {
	return &UpdateReservation{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    time.Now,
	}
}

// slotChange is the booking geometry after applying the patch.
type slotChange struct {
	date      string
	clock     string
	partySize int
	duration  int
}

func (in UpdateReservationInput) target(r *models.Reservation) (slotChange, error) {
	c := slotChange{
		date:      r.Date,
		clock:     r.Time,
		partySize: r.PartySize,
		duration:  r.DurationMinutes,
	}

	if in.Date != nil {
		c.date = *in.Date
	}
	if in.Time != nil {
		c.clock = *in.Time
	}
	if in.PartySize != nil {
		c.partySize = *in.PartySize
		// without an explicit override the duration follows the new party size
		c.duration = domain.SlotDuration(c.partySize)
	}
	if in.DurationMinutes != nil {
		c.duration = domain.ResolveDuration(c.partySize, *in.DurationMinutes)
	}

	clock, err := validateSlot(c.date, c.clock, c.partySize)
	if err != nil {
		return slotChange{}, err
	}
	c.clock = clock
	return c, nil
}

func (c slotChange) differsFrom(r *models.Reservation) bool {
	return c.date != r.Date ||
		c.clock != r.Time ||
		c.partySize != r.PartySize ||
		c.duration != r.DurationMinutes
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	in UpdateReservationInput,
) (*models.Reservation, error) {

	current, err := locate(ctx, uc.repo, in.Locator, uc.now())
	if err != nil {
		return nil, err
	}

	if domain.IsTerminal(domain.Status(current.Status)) {
		return nil, domain.ErrInvalidTransition
	}

	restaurant, err := uc.repo.GetRestaurant(ctx, current.RestaurantID)
	if err != nil {
		return nil, err
	}

	var updated *models.Reservation
	err = retryMoved(func() error {
		change, err := in.target(current)
		if err != nil {
			return err
		}

		// moving days holds both: the old day's writers (cancel, transitions)
		// must not interleave with the move
		days := []string{current.Date, change.date}

		return withinLockedDays(ctx, uc.locker, uc.repo, restaurant.ID, days, func(tx domain.Repository) error {
			// re-read inside the unit of work; the first read only authorized the caller
			r, err := tx.GetReservation(ctx, current.ID)
			if err != nil {
				return err
			}
			if r.Date != current.Date {
				current = r
				return errDayMoved
			}
			if domain.IsTerminal(domain.Status(r.Status)) {
				return domain.ErrInvalidTransition
			}

			if change.differsFrom(r) {
				if err := uc.reallocate(ctx, tx, r, change); err != nil {
					return err
				}

				if change.partySize != r.PartySize && canReprice(r) {
					requiresPayment, deposit := depositFor(restaurant, change.partySize)
					r.RequiresPayment = requiresPayment
					r.DepositAmount = deposit
					r.PaymentStatus = string(domain.InitialPaymentStatus(requiresPayment))
				}

				r.Date = change.date
				r.Time = change.clock
				r.PartySize = change.partySize
				r.DurationMinutes = change.duration
			}

			in.patchContact(r)

			if err := tx.UpdateReservation(ctx, r); err != nil {
				return err
			}
			updated = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, updated, in.UserID, "reservation_updated", map[string]any{
		"table_id":   updated.TableID,
		"date":       updated.Date,
		"time":       updated.Time,
		"party_size": updated.PartySize,
	})

	return updated, nil
}

// reallocate keeps the current table when it still fits the new slot, and
// otherwise moves the reservation to the best free one.
func (uc *UpdateReservation) reallocate(
	ctx context.Context,
	tx domain.Repository,
	r *models.Reservation,
	change slotChange,
) error {

	tables, err := tx.FindActiveTables(ctx, r.RestaurantID)
	if err != nil {
		return err
	}

	existing, err := tx.FindReservations(ctx, domain.ReservationFilter{
		RestaurantID: r.RestaurantID,
		Date:         change.date,
		ExcludeID:    &r.ID,
	})
	if err != nil {
		return err
	}

	candidates, err := domain.CandidateTables(tables, existing, domain.AllocationRequest{
		PartySize:            change.partySize,
		Date:                 change.date,
		Time:                 change.clock,
		DurationMinutes:      change.duration,
		ExcludeReservationID: &r.ID,
	})
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return domain.ErrSlotUnavailable
	}

	chosen := candidates[0]
	if r.TableID != nil {
		for _, t := range candidates {
			if t.ID == *r.TableID {
				chosen = t
				break
			}
		}
	}

	tableID := chosen.ID
	r.TableID = &tableID
	r.Table = &chosen
	return nil
}

// canReprice is false once money has moved.
func canReprice(r *models.Reservation) bool {
	switch domain.PaymentStatus(r.PaymentStatus) {
	case domain.PaymentNone, domain.PaymentPending:
		return true
	}
	return false
}

func (in UpdateReservationInput) patchContact(r *models.Reservation) {
	if in.ClientName != nil {
		r.ClientName = *in.ClientName
	}
	if in.ClientEmail != nil {
		r.ClientEmail = *in.ClientEmail
	}
	if in.ClientPhone != nil {
		r.ClientPhone = *in.ClientPhone
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if in.SpecialRequests != nil {
		r.SpecialRequests = *in.SpecialRequests
	}
}
