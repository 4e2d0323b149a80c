package reservation

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

type PaymentStatus string

const (
	PaymentNone              PaymentStatus = "NONE"
	PaymentPending           PaymentStatus = "PENDING"
	PaymentCompleted         PaymentStatus = "COMPLETED"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to Status) error {
	if from == StatusCancelled && to == StatusCancelled {
		return ErrAlreadyCancelled
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

func InitialStatus() Status {
	return StatusPending
}

// InitialPaymentStatus is PENDING when a deposit is due, NONE otherwise.
func InitialPaymentStatus(requiresPayment bool) PaymentStatus {
	if requiresPayment {
		return PaymentPending
	}
	return PaymentNone
}
