package reservation

import (
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func NewInterval(clock string, durationMinutes int) (Interval, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return Interval{}, ErrInvalidDateOrTime
	}
	return Interval{Start: start, End: start + durationMinutes}, nil
}

// Overlaps treats touching endpoints as free: back-to-back bookings are legal.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

func occupiesTable(r *models.Reservation) bool {
	return r.TableID != nil && Status(r.Status) != StatusCancelled
}

// Conflicts reports whether two reservations hold the same table at the same time.
// Cancelled reservations never conflict.
func Conflicts(a, b *models.Reservation) (bool, error) {
	if !occupiesTable(a) || !occupiesTable(b) {
		return false, nil
	}
	if a.Date != b.Date || *a.TableID != *b.TableID {
		return false, nil
	}

	ia, err := NewInterval(a.Time, a.DurationMinutes)
	if err != nil {
		return false, err
	}
	ib, err := NewInterval(b.Time, b.DurationMinutes)
	if err != nil {
		return false, err
	}

	return ia.Overlaps(ib), nil
}
