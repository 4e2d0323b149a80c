package dto

type ReservationListDTO struct {
	ID              uint   `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	PartySize       int    `json:"party_size"`
	TableNumber     int    `json:"table_number,omitempty"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}
