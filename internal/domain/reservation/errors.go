package reservation

import "github.com/BruksfildServices01/table-booking/internal/httperr"

const (
	CodeNotFound          = "not_found"
	CodeSlotUnavailable   = "slot_unavailable"
	CodeInvalidTransition = "invalid_transition"
	CodeTokenExpired      = "token_expired"
	CodeConflict          = "conflict"
)

var (
	ErrRestaurantNotFound  = httperr.ErrBusinessOf(CodeNotFound, "restaurant_not_found")
	ErrReservationNotFound = httperr.ErrBusinessOf(CodeNotFound, "reservation_not_found")

	ErrSlotUnavailable   = httperr.ErrBusiness(CodeSlotUnavailable)
	ErrInvalidTransition = httperr.ErrBusiness(CodeInvalidTransition)
	ErrAlreadyCancelled  = httperr.ErrBusinessOf(CodeInvalidTransition, "already_cancelled")
	ErrTokenExpired      = httperr.ErrBusiness(CodeTokenExpired)

	// ErrConflict is raised by storage when a write would break the one-booking-per-table
	// invariant. The lifecycle turns it into ErrSlotUnavailable.
	ErrConflict = httperr.ErrBusiness(CodeConflict)

	ErrAccessDenied      = httperr.ErrBusiness("access_denied")
	ErrInvalidDateOrTime = httperr.ErrBusiness("invalid_date_or_time")
	ErrInvalidPartySize  = httperr.ErrBusiness("invalid_party_size")
	ErrBookingBusy       = httperr.ErrBusiness("booking_busy")
)
