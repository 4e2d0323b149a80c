package dto

// CreateReservationRequest carries guest contact details; callers with a JWT may
// leave them out.
type CreateReservationRequest struct {
	ClientName  string `json:"client_name" binding:"max=100"`
	ClientEmail string `json:"client_email" binding:"omitempty,email,max=100"`
	ClientPhone string `json:"client_phone" binding:"max=30"`

	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required,datetime=15:04"`
	PartySize       int    `json:"party_size" binding:"required,min=1,max=20"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=30,max=240"`

	Notes           string `json:"notes" binding:"max=255"`
	SpecialRequests string `json:"special_requests" binding:"max=255"`
}

type UpdateReservationRequest struct {
	Date            *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time" binding:"omitempty,datetime=15:04"`
	PartySize       *int    `json:"party_size" binding:"omitempty,min=1,max=20"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=30,max=240"`

	ClientName      *string `json:"client_name" binding:"omitempty,max=100"`
	ClientEmail     *string `json:"client_email" binding:"omitempty,email,max=100"`
	ClientPhone     *string `json:"client_phone" binding:"omitempty,max=30"`
	Notes           *string `json:"notes" binding:"omitempty,max=255"`
	SpecialRequests *string `json:"special_requests" binding:"omitempty,max=255"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type AvailabilityQuery struct {
	Date            string `form:"date" binding:"required,datetime=2006-01-02"`
	Time            string `form:"time" binding:"omitempty,datetime=15:04"`
	PartySize       int    `form:"party_size" binding:"required,min=1,max=20"`
	DurationMinutes int    `form:"duration_minutes" binding:"omitempty,min=30,max=240"`
}

type OpeningDayConfig struct {
	Weekday      *int   `json:"weekday" binding:"required,min=0,max=6"`
	Closed       bool   `json:"closed"`
	LunchOpen    string `json:"lunch_open" binding:"omitempty,datetime=15:04"`
	LunchClose   string `json:"lunch_close" binding:"omitempty,datetime=15:04"`
	EveningOpen  string `json:"evening_open" binding:"omitempty,datetime=15:04"`
	EveningClose string `json:"evening_close" binding:"omitempty,datetime=15:04"`
}

type OpeningHoursUpdateRequest struct {
	Days []OpeningDayConfig `json:"days" binding:"required,dive"`
}
