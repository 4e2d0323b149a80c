package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/config"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// One live booking per table and start. Cancelled rows drop out of the index so
// a freed slot can be booked again.
const reservationSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_table_slot
ON reservations (table_id, date, time)
WHERE status <> 'CANCELLED' AND table_id IS NOT NULL`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	if err := Seed(db); err != nil {
		logrus.Fatalf("failed to seed: %v", err)
	}

	return db
}

// Migrate works on any gorm dialect that supports partial indexes (postgres, sqlite).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.OpeningHours{},
		&models.Table{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(reservationSlotIndex).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}

	return db.Exec(`
		UPDATE restaurants
		SET timezone = 'Europe/Paris'
		WHERE timezone IS NULL OR timezone = ''
	`).Error
}
