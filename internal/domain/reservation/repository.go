package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// GuestTokenTTL is how long a guest management token stays usable.
const GuestTokenTTL = 7 * 24 * time.Hour

type ReservationFilter struct {
	RestaurantID uint
	Date         string

	ExcludeID        *uint
	IncludeCancelled bool
}

// Repository is the persistence collaborator. Missing rows are reported as
// ErrRestaurantNotFound / ErrReservationNotFound; writes that would double-book a
// table fail with ErrConflict.
type Repository interface {
	// -------- Restaurant --------
	FindActiveRestaurant(ctx context.Context) (*models.Restaurant, error)

	GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error)

	// FindOpeningHours returns nil, nil when the weekday is not configured.
	FindOpeningHours(
		ctx context.Context,
		restaurantID uint,
		weekday int,
	) (*models.OpeningHours, error)

	ListOpeningHours(ctx context.Context, restaurantID uint) ([]models.OpeningHours, error)

	// ReplaceOpeningHours swaps the whole weekly schedule for rows.
	ReplaceOpeningHours(
		ctx context.Context,
		restaurantID uint,
		rows []models.OpeningHours,
	) error

	// -------- Tables --------
	FindActiveTables(ctx context.Context, restaurantID uint) ([]models.Table, error)

	// -------- Reservations --------
	FindReservations(ctx context.Context, f ReservationFilter) ([]models.Reservation, error)

	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)

	GetReservationByToken(ctx context.Context, token string) (*models.Reservation, error)

	InsertReservation(ctx context.Context, r *models.Reservation) error

	UpdateReservation(ctx context.Context, r *models.Reservation) error

	// WithinDay runs fn as one unit of work that no other writer for the same
	// restaurant and day can interleave with.
	WithinDay(
		ctx context.Context,
		restaurantID uint,
		date string,
		fn func(tx Repository) error,
	) error
}

// DayLocker serializes allocate-then-write for one restaurant day across callers.
type DayLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type TokenGenerator interface {
	NewOpaqueToken() string
}

func DayLockKey(restaurantID uint, date string) string {
	return fmt.Sprintf("reservation-lock:%d:%s", restaurantID, date)
}
