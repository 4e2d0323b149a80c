package reservation

import (
	"time"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

const (
	NoShowReason = "no_show"

	FreeCancellationWindow = 24 * time.Hour
)

type RefundQuote struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

type RefundPolicyInfo struct {
	FreeCancellationHours int    `json:"free_cancellation_hours"`
	RefundPercentage      int    `json:"refund_percentage"`
	NoShowPolicy          string `json:"no_show_policy"`
}

func RefundPolicy() RefundPolicyInfo {
	return RefundPolicyInfo{
		FreeCancellationHours: int(FreeCancellationWindow / time.Hour),
		RefundPercentage:      100,
		NoShowPolicy:          "No refund for no-show",
	}
}

// CalculateRefundAmount applies the deposit refund policy.
func CalculateRefundAmount(
	reservationAt time.Time,
	depositAmount float64,
	cancellationReason string,
	now time.Time,
) RefundQuote {

	if cancellationReason == NoShowReason {
		return RefundQuote{Amount: 0, Reason: "No refund for no-show"}
	}

	if reservationAt.Sub(now) >= FreeCancellationWindow {
		return RefundQuote{Amount: depositAmount, Reason: "Full refund — ≥24h notice"}
	}

	return RefundQuote{Amount: 0, Reason: "No refund — <24h notice"}
}

// StartsAt resolves the reservation's date and time in loc.
func StartsAt(r *models.Reservation, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, r.Date+" "+r.Time, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateOrTime
	}
	return t, nil
}
