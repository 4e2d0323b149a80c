package models

import "time"

// OpeningHours is one weekday of a restaurant's schedule. Weekday follows time.Weekday
// (0 = Sunday). Empty window bounds mean the service is not offered that day.
type OpeningHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"uniqueIndex:idx_opening_hours_day" json:"restaurant_id"`

	Weekday int  `gorm:"uniqueIndex:idx_opening_hours_day" json:"weekday"`
	Closed  bool `json:"closed"`

	LunchOpen    string `gorm:"size:5" json:"lunch_open"`
	LunchClose   string `gorm:"size:5" json:"lunch_close"`
	EveningOpen  string `gorm:"size:5" json:"evening_open"`
	EveningClose string `gorm:"size:5" json:"evening_close"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
