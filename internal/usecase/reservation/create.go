package reservation

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UserID is nil for guests, who get a management token instead.
type CreateReservationInput struct {
	UserID *uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date            string
	Time            string
	PartySize       int
	DurationMinutes int

	Notes           string
	SpecialRequests string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo   domain.Repository
	locker domain.DayLocker
	tokens domain.TokenGenerator
	audit  *audit.Dispatcher

	now func() time.Time
}

func NewCreateReservation(
	repo domain.Repository,
	locker domain.DayLocker,
	tokens domain.TokenGenerator,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:   repo,
		locker: locker,
		tokens: tokens,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// Restaurant + request shape
	// --------------------------------------------------
	restaurant, err := uc.repo.FindActiveRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	clock, err := validateSlot(in.Date, in.Time, in.PartySize)
	if err != nil {
		return nil, err
	}

	now := localNow(uc.now, restaurant)
	requiresPayment, deposit := depositFor(restaurant, in.PartySize)

	r := &models.Reservation{
		RestaurantID:    restaurant.ID,
		UserID:          in.UserID,
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientEmail:     strings.TrimSpace(in.ClientEmail),
		ClientPhone:     strings.TrimSpace(in.ClientPhone),
		Date:            in.Date,
		Time:            clock,
		DurationMinutes: domain.ResolveDuration(in.PartySize, in.DurationMinutes),
		PartySize:       in.PartySize,
		Status:          string(domain.InitialStatus()),
		PaymentStatus:   string(domain.InitialPaymentStatus(requiresPayment)),
		RequiresPayment: requiresPayment,
		DepositAmount:   deposit,
		Notes:           in.Notes,
		SpecialRequests: in.SpecialRequests,
	}

	// --------------------------------------------------
	// Guest management token
	// --------------------------------------------------
	if in.UserID == nil {
		token := uc.tokens.NewOpaqueToken()
		expires := now.Add(domain.GuestTokenTTL)
		r.ManagementToken = &token
		r.TokenExpiresAt = &expires
	}

	// --------------------------------------------------
	// Allocate + persist, atomically for the day
	// --------------------------------------------------
	var table models.Table
	err = withinLockedDay(ctx, uc.locker, uc.repo, restaurant.ID, in.Date, func(tx domain.Repository) error {
		tables, err := tx.FindActiveTables(ctx, restaurant.ID)
		if err != nil {
			return err
		}

		existing, err := tx.FindReservations(ctx, domain.ReservationFilter{
			RestaurantID: restaurant.ID,
			Date:         in.Date,
		})
		if err != nil {
			return err
		}

		best, ok, err := domain.AllocateTable(tables, existing, domain.AllocationRequest{
			PartySize:       r.PartySize,
			Date:            r.Date,
			Time:            r.Time,
			DurationMinutes: r.DurationMinutes,
		})
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrSlotUnavailable
		}

		table = *best
		tableID := best.ID
		r.TableID = &tableID

		return tx.InsertReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	r.Table = &table

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	dispatch(uc.audit, r, in.UserID, "reservation_created", map[string]any{
		"table_id":   table.ID,
		"date":       r.Date,
		"time":       r.Time,
		"party_size": r.PartySize,
	})

	return r, nil
}
