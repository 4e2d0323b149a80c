package models

import "time"

// Reservation occupies its table for [Time, Time+DurationMinutes) on Date.
// Date is a calendar day (YYYY-MM-DD) and Time a slot start (HH:MM), both in the
// restaurant's timezone.
type Reservation struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"index:idx_reservations_day" json:"restaurant_id"`

	TableID *uint  `json:"table_id"`
	Table   *Table `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"table,omitempty"`

	UserID      *uint  `gorm:"index" json:"user_id,omitempty"`
	ClientName  string `gorm:"size:100" json:"client_name,omitempty"`
	ClientEmail string `gorm:"size:100" json:"client_email,omitempty"`
	ClientPhone string `gorm:"size:30" json:"client_phone,omitempty"`

	Date            string `gorm:"size:10;not null;index:idx_reservations_day" json:"date"`
	Time            string `gorm:"size:5;not null" json:"time"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	PartySize       int    `gorm:"not null" json:"party_size"`

	Status        string `gorm:"size:20;default:'PENDING'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'NONE'" json:"payment_status"`

	RequiresPayment bool    `json:"requires_payment"`
	DepositAmount   float64 `json:"deposit_amount"`

	ManagementToken *string    `gorm:"size:64;uniqueIndex" json:"management_token,omitempty"`
	TokenExpiresAt  *time.Time `json:"token_expires_at,omitempty"`

	Notes              string `gorm:"size:255" json:"notes,omitempty"`
	SpecialRequests    string `gorm:"size:255" json:"special_requests,omitempty"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
