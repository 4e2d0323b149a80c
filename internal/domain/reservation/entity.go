package reservation

import (
	"time"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.Reservation, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusConfirmed); err != nil {
		return err
	}

	r.Status = string(StatusConfirmed)
	r.ConfirmedAt = &now
	return nil
}

func Cancel(r *models.Reservation, reason string, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusCancelled); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancellationReason = reason
	r.CancelledAt = &now
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusCompleted); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}

func MarkNoShow(r *models.Reservation, now time.Time) error {
	if err := CanTransition(Status(r.Status), StatusNoShow); err != nil {
		return err
	}

	r.Status = string(StatusNoShow)
	r.CompletedAt = &now
	return nil
}

// CheckToken validates guest access: the token is usable while TokenExpiresAt >= now.
func CheckToken(r *models.Reservation, now time.Time) error {
	if r.TokenExpiresAt == nil {
		return nil
	}
	if r.TokenExpiresAt.Before(now) {
		return ErrTokenExpired
	}
	return nil
}

// CheckOwner rejects an authenticated caller touching someone else's reservation.
// Guests (userID == nil) are authorized by their token instead.
func CheckOwner(r *models.Reservation, userID *uint) error {
	if userID == nil {
		return nil
	}
	if r.UserID == nil || *r.UserID != *userID {
		return ErrAccessDenied
	}
	return nil
}
