package reservation

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
)

const entityReservation = "reservation"

// Locator identifies a reservation either by guest token or by id. Id lookups
// need an identity: the owning user, or an operator.
type Locator struct {
	ID    uint
	Token string

	UserID   *uint
	Operator bool
}

func (l Locator) byToken() bool {
	return l.Token != ""
}

// locate loads the reservation and checks the caller may touch it.
func locate(
	ctx context.Context,
	repo domain.Repository,
	loc Locator,
	now time.Time,
) (*models.Reservation, error) {

	if loc.byToken() {
		r, err := repo.GetReservationByToken(ctx, loc.Token)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckToken(r, now); err != nil {
			return nil, err
		}
		return r, nil
	}

	if loc.ID == 0 {
		return nil, domain.ErrReservationNotFound
	}
	if !loc.Operator && loc.UserID == nil {
		return nil, domain.ErrAccessDenied
	}

	r, err := repo.GetReservation(ctx, loc.ID)
	if err != nil {
		return nil, err
	}
	if !loc.Operator {
		if err := domain.CheckOwner(r, loc.UserID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// resolveRestaurant treats id 0 as "the active restaurant".
func resolveRestaurant(
	ctx context.Context,
	repo domain.Repository,
	id uint,
) (*models.Restaurant, error) {

	if id == 0 {
		return repo.FindActiveRestaurant(ctx)
	}
	return repo.GetRestaurant(ctx, id)
}

// withinLockedDay runs fn under the restaurant-day lock and the repository's
// unit of work. A storage conflict means another writer won the table.
func withinLockedDay(
	ctx context.Context,
	locker domain.DayLocker,
	repo domain.Repository,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {
	return withinLockedDays(ctx, locker, repo, restaurantID, []string{date}, fn)
}

// withinLockedDays holds every listed day at once. Days are taken in date order
// so two writers spanning the same days cannot deadlock.
func withinLockedDays(
	ctx context.Context,
	locker domain.DayLocker,
	repo domain.Repository,
	restaurantID uint,
	dates []string,
	fn func(tx domain.Repository) error,
) error {

	days := uniqueSorted(dates)

	for _, d := range days {
		unlock, err := locker.Lock(ctx, domain.DayLockKey(restaurantID, d))
		if err != nil {
			return err
		}
		defer unlock()
	}

	err := withinDays(ctx, repo, restaurantID, days, fn)
	if httperr.IsBusiness(err, domain.CodeConflict) {
		return domain.ErrSlotUnavailable
	}
	return err
}

// withinDays nests one unit of work per day; fn sees the innermost one.
func withinDays(
	ctx context.Context,
	repo domain.Repository,
	restaurantID uint,
	days []string,
	fn func(tx domain.Repository) error,
) error {

	if len(days) == 0 {
		return fn(repo)
	}
	return repo.WithinDay(ctx, restaurantID, days[0], func(tx domain.Repository) error {
		return withinDays(ctx, tx, restaurantID, days[1:], fn)
	})
}

func uniqueSorted(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// errDayMoved means the reservation left the locked day between the unlocked
// read and the unit of work; the caller retries against its new day.
var errDayMoved = errors.New("reservation moved to another day")

const maxDayMoves = 3

// retryMoved reruns op while it reports errDayMoved. A reservation that keeps
// moving is treated as contention.
func retryMoved(op func() error) error {
	for attempt := 1; ; attempt++ {
		err := op()
		if !errors.Is(err, errDayMoved) {
			return err
		}
		if attempt == maxDayMoves {
			return domain.ErrBookingBusy
		}
	}
}

// depositFor applies the restaurant's deposit rule; a non-positive threshold
// disables deposits.
func depositFor(r *models.Restaurant, partySize int) (bool, float64) {
	if r.PaymentThreshold <= 0 || partySize < r.PaymentThreshold {
		return false, 0
	}
	return true, r.MinimumDepositAmount
}

// validateSlot returns clock in canonical HH:MM form.
func validateSlot(date, clock string, partySize int) (string, error) {
	if partySize <= 0 {
		return "", domain.ErrInvalidPartySize
	}
	if _, err := domain.ParseDate(date); err != nil {
		return "", err
	}
	minutes, err := domain.ParseClock(clock)
	if err != nil {
		return "", domain.ErrInvalidDateOrTime
	}
	return domain.FormatClock(minutes), nil
}

func localNow(now func() time.Time, r *models.Restaurant) time.Time {
	return timezone.In(now(), r.Timezone)
}

func dispatch(
	d *audit.Dispatcher,
	r *models.Reservation,
	userID *uint,
	action string,
	metadata any,
) {
	id := r.ID
	d.Dispatch(audit.Event{
		RestaurantID: r.RestaurantID,
		UserID:       userID,
		Action:       action,
		Entity:       entityReservation,
		EntityID:     &id,
		Metadata:     metadata,
	})
}
