package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

const pgUniqueViolation = "23505"

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --------------------------------------------------
// Restaurant
// --------------------------------------------------

func (r *ReservationGormRepository) FindActiveRestaurant(
	ctx context.Context,
) (*models.Restaurant, error) {

	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		First(&restaurant).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find active restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *ReservationGormRepository) GetRestaurant(
	ctx context.Context,
	id uint,
) (*models.Restaurant, error) {

	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return &restaurant, nil
}

// --------------------------------------------------
// Opening hours
// --------------------------------------------------

func (r *ReservationGormRepository) FindOpeningHours(
	ctx context.Context,
	restaurantID uint,
	weekday int,
) (*models.OpeningHours, error) {

	var oh models.OpeningHours
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND weekday = ?", restaurantID, weekday).
		First(&oh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find opening hours: %w", err)
	}
	return &oh, nil
}

func (r *ReservationGormRepository) ListOpeningHours(
	ctx context.Context,
	restaurantID uint,
) ([]models.OpeningHours, error) {

	var rows []models.OpeningHours
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list opening hours: %w", err)
	}
	return rows, nil
}

func (r *ReservationGormRepository) ReplaceOpeningHours(
	ctx context.Context,
	restaurantID uint,
	rows []models.OpeningHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("restaurant_id = ?", restaurantID).
			Delete(&models.OpeningHours{}).Error; err != nil {
			return fmt.Errorf("clear opening hours: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].RestaurantID = restaurantID
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save opening hours: %w", err)
		}
		return nil
	})
}

// --------------------------------------------------
// Tables
// --------------------------------------------------

func (r *ReservationGormRepository) FindActiveTables(
	ctx context.Context,
	restaurantID uint,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("capacity ASC, number ASC").
		Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("find active tables: %w", err)
	}
	return tables, nil
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

func (r *ReservationGormRepository) FindReservations(
	ctx context.Context,
	f domain.ReservationFilter,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx).
		Preload("Table").
		Where("restaurant_id = ? AND date = ?", f.RestaurantID, f.Date)

	if !f.IncludeCancelled {
		q = q.Where("status <> ?", string(domain.StatusCancelled))
	}
	if f.ExcludeID != nil {
		q = q.Where("id <> ?", *f.ExcludeID)
	}

	var out []models.Reservation
	if err := q.Order("time ASC, id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	return out, nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	err := r.db.WithContext(ctx).Preload("Table").First(&res, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) GetReservationByToken(
	ctx context.Context,
	token string,
) (*models.Reservation, error) {

	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Table").
		Where("management_token = ?", token).
		First(&res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation by token: %w", err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) InsertReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("update reservation %d: %w", res.ID, err)
	}
	return nil
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

// WithinDay runs fn in a transaction. On postgres it also takes a transaction-scoped
// advisory lock for the day and row locks on the day's reservations, so writers from
// other processes queue behind it.
func (r *ReservationGormRepository) WithinDay(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPostgres(tx) {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				domain.DayLockKey(restaurantID, date),
			).Error; err != nil {
				return fmt.Errorf("advisory lock: %w", err)
			}

			var ids []uint
			if err := tx.Model(&models.Reservation{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("restaurant_id = ? AND date = ?", restaurantID, date).
				Pluck("id", &ids).Error; err != nil {
				return fmt.Errorf("lock day reservations: %w", err)
			}
		}

		return fn(&ReservationGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
