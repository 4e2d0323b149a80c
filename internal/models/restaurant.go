package models

import "time"

type Restaurant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:30" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64;default:'Europe/Paris'" json:"timezone"`
	IsActive bool   `gorm:"index" json:"is_active"`

	BufferMinutes        int     `json:"buffer_minutes"`
	PaymentThreshold     int     `json:"payment_threshold"`
	MinimumDepositAmount float64 `json:"minimum_deposit_amount"`

	OpeningHours []OpeningHours `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"opening_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
