package reservation

import (
	"sort"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

type AllocationRequest struct {
	PartySize       int
	Date            string
	Time            string
	DurationMinutes int

	// ExcludeReservationID lets an update re-check its own slot without
	// colliding with itself.
	ExcludeReservationID *uint
}

// CandidateTables returns every active table able to seat the party with no
// overlapping booking, smallest capacity first, then lowest number.
func CandidateTables(
	tables []models.Table,
	existing []models.Reservation,
	req AllocationRequest,
) ([]models.Table, error) {

	if req.PartySize <= 0 {
		return nil, ErrInvalidPartySize
	}

	want, err := NewInterval(req.Time, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	busy := make(map[uint]bool)
	for i := range existing {
		r := &existing[i]
		if !occupiesTable(r) || r.Date != req.Date {
			continue
		}
		if req.ExcludeReservationID != nil && r.ID == *req.ExcludeReservationID {
			continue
		}
		held, err := NewInterval(r.Time, r.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if held.Overlaps(want) {
			busy[*r.TableID] = true
		}
	}

	out := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if !t.IsActive || t.Capacity < req.PartySize || busy[t.ID] {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Number < out[j].Number
	})

	return out, nil
}

// AllocateTable picks the best-fit table. ok is false when nothing is free,
// which is a normal outcome rather than an error.
func AllocateTable(
	tables []models.Table,
	existing []models.Reservation,
	req AllocationRequest,
) (table *models.Table, ok bool, err error) {

	candidates, err := CandidateTables(tables, existing, req)
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	best := candidates[0]
	return &best, true, nil
}
