package models

import "time"

type Table struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"uniqueIndex:idx_tables_number;index" json:"restaurant_id"`

	Number   int    `gorm:"uniqueIndex:idx_tables_number;not null" json:"number"`
	Capacity int    `gorm:"not null" json:"capacity"`
	Position string `gorm:"size:50" json:"position"`
	IsActive bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
