package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// RestaurantID 0 selects the active restaurant.
type SlotQuery struct {
	RestaurantID uint
	Date         string
	Time         string
	PartySize    int

	DurationMinutes      int
	ExcludeReservationID *uint
}

type DayQuery struct {
	RestaurantID uint
	Date         string
	PartySize    int
}

type TimeSlot struct {
	Time                string `json:"time"`
	Available           bool   `json:"available"`
	AvailableTableCount int    `json:"available_table_count"`
}

type DayAvailability struct {
	Date            string     `json:"date"`
	PartySize       int        `json:"party_size"`
	DurationMinutes int        `json:"duration_minutes"`
	Closed          bool       `json:"closed"`
	Slots           []TimeSlot `json:"slots"`
}

// Availability answers read-only questions over one snapshot of tables and
// reservations per call. Results may be stale under concurrent writes; only the
// lifecycle's locked write path is authoritative.
type Availability struct {
	repo domain.Repository
}

func NewAvailability(repo domain.Repository) *Availability {
	return &Availability{repo: repo}
}

func (s *Availability) snapshot(
	ctx context.Context,
	restaurantID uint,
	date string,
	excludeID *uint,
) ([]models.Table, []models.Reservation, error) {

	tables, err := s.repo.FindActiveTables(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.repo.FindReservations(ctx, domain.ReservationFilter{
		RestaurantID: restaurantID,
		Date:         date,
		ExcludeID:    excludeID,
	})
	if err != nil {
		return nil, nil, err
	}

	return tables, existing, nil
}

// AvailableTables lists every table that could take the party, best fit first.
func (s *Availability) AvailableTables(
	ctx context.Context,
	q SlotQuery,
) ([]models.Table, error) {

	clock, err := validateSlot(q.Date, q.Time, q.PartySize)
	if err != nil {
		return nil, err
	}

	restaurant, err := resolveRestaurant(ctx, s.repo, q.RestaurantID)
	if err != nil {
		return nil, err
	}

	tables, existing, err := s.snapshot(ctx, restaurant.ID, q.Date, q.ExcludeReservationID)
	if err != nil {
		return nil, err
	}

	return domain.CandidateTables(tables, existing, domain.AllocationRequest{
		PartySize:            q.PartySize,
		Date:                 q.Date,
		Time:                 clock,
		DurationMinutes:      domain.ResolveDuration(q.PartySize, q.DurationMinutes),
		ExcludeReservationID: q.ExcludeReservationID,
	})
}

func (s *Availability) CheckSlotAvailability(
	ctx context.Context,
	q SlotQuery,
) (bool, error) {

	tables, err := s.AvailableTables(ctx, q)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

func (s *Availability) GetDayAvailability(
	ctx context.Context,
	q DayQuery,
) (*DayAvailability, error) {

	if q.PartySize <= 0 {
		return nil, domain.ErrInvalidPartySize
	}
	day, err := domain.ParseDate(q.Date)
	if err != nil {
		return nil, err
	}

	restaurant, err := resolveRestaurant(ctx, s.repo, q.RestaurantID)
	if err != nil {
		return nil, err
	}

	oh, err := s.repo.FindOpeningHours(ctx, restaurant.ID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	schedule := domain.ScheduleFromOpeningHours(oh, day.Weekday())

	duration := domain.SlotDuration(q.PartySize)
	out := &DayAvailability{
		Date:            q.Date,
		PartySize:       q.PartySize,
		DurationMinutes: duration,
		Closed:          schedule.Closed,
		Slots:           []TimeSlot{},
	}

	starts := domain.GenerateSlots(schedule, duration, restaurant.BufferMinutes)
	if len(starts) == 0 {
		return out, nil
	}

	tables, existing, err := s.snapshot(ctx, restaurant.ID, q.Date, nil)
	if err != nil {
		return nil, err
	}

	for _, start := range starts {
		candidates, err := domain.CandidateTables(tables, existing, domain.AllocationRequest{
			PartySize:       q.PartySize,
			Date:            q.Date,
			Time:            start,
			DurationMinutes: duration,
		})
		if err != nil {
			return nil, err
		}

		out.Slots = append(out.Slots, TimeSlot{
			Time:                start,
			Available:           len(candidates) > 0,
			AvailableTableCount: len(candidates),
		})
	}

	return out, nil
}
