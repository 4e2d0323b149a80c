package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// DefaultRestaurant is the single restaurant a fresh installation starts with.
func DefaultRestaurant() models.Restaurant {
	return models.Restaurant{
		Name:                 "TechPlus Restaurant",
		Phone:                "+33 1 23 45 67 89",
		Address:              "123 Rue de la Paix, 75001 Paris, France",
		Timezone:             "Europe/Paris",
		IsActive:             true,
		BufferMinutes:        30,
		PaymentThreshold:     6,
		MinimumDepositAmount: 15,
	}
}

// DefaultTables is the floor plan: 10 twos, 5 fours, 3 sixes and 2 eights.
func DefaultTables(restaurantID uint) []models.Table {
	tables := make([]models.Table, 0, 20)
	for i := 1; i <= 20; i++ {
		t := models.Table{
			RestaurantID: restaurantID,
			Number:       i,
			IsActive:     true,
		}

		switch {
		case i <= 10:
			t.Capacity = 2
		case i <= 15:
			t.Capacity = 4
		case i <= 18:
			t.Capacity = 6
		default:
			t.Capacity = 8
		}

		switch {
		case i <= 5:
			t.Position = "Terrace"
		case i <= 10:
			t.Position = "Main room"
		case i <= 15:
			t.Position = "Private room"
		default:
			t.Position = "VIP"
		}

		tables = append(tables, t)
	}
	return tables
}

// DefaultOpeningHours materializes the default weekly schedule as rows.
func DefaultOpeningHours(restaurantID uint) []models.OpeningHours {
	rows := make([]models.OpeningHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		day := domain.DefaultDaySchedule(time.Weekday(wd))
		oh := models.OpeningHours{
			RestaurantID: restaurantID,
			Weekday:      wd,
			Closed:       day.Closed,
		}
		if day.Lunch != nil {
			oh.LunchOpen, oh.LunchClose = day.Lunch.Open, day.Lunch.Close
		}
		if day.Evening != nil {
			oh.EveningOpen, oh.EveningClose = day.Evening.Open, day.Evening.Close
		}
		rows = append(rows, oh)
	}
	return rows
}

// Seed creates the default restaurant with its tables and schedule when the
// database holds no restaurant yet.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		restaurant := DefaultRestaurant()
		if err := tx.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}

		tables := DefaultTables(restaurant.ID)
		if err := tx.Create(&tables).Error; err != nil {
			return fmt.Errorf("create tables: %w", err)
		}

		hours := DefaultOpeningHours(restaurant.ID)
		if err := tx.Create(&hours).Error; err != nil {
			return fmt.Errorf("create opening hours: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"restaurant_id": restaurant.ID,
			"tables":        len(tables),
		}).Info("seeded default restaurant")

		return nil
	})
}
