package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

func slotTimes(day *DayAvailability) []string {
	out := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		out = append(out, s.Time)
	}
	return out
}

func TestDayAvailabilityDefaultSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 2})
	require.NoError(t, err)

	assert.False(t, day.Closed)
	assert.Equal(t, 90, day.DurationMinutes)
	assert.Equal(t, []string{"12:00", "19:00", "21:00"}, slotTimes(day))
	for _, s := range day.Slots {
		assert.True(t, s.Available)
		assert.Equal(t, 4, s.AvailableTableCount)
	}

	f.book(t, "19:00", 6)

	day, err = f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, day.Slots[0].AvailableTableCount)
	assert.Equal(t, 3, day.Slots[1].AvailableTableCount)
	// 19:00 + 120 ends exactly at 21:00
	assert.Equal(t, 4, day.Slots[2].AvailableTableCount)
}

func TestDayAvailabilityClosedSunday(t *testing.T) {
	f := newFixture(t)

	day, err := f.availability.GetDayAvailability(context.Background(), DayQuery{Date: "2024-12-22", PartySize: 2})
	require.NoError(t, err)

	assert.True(t, day.Closed)
	assert.NotNil(t, day.Slots)
	assert.Empty(t, day.Slots)
}

func TestDayAvailabilityUsesConfiguredHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.ReplaceOpeningHours(ctx, f.restaurant.ID, []models.OpeningHours{
		{Weekday: 3, EveningOpen: "18:00", EveningClose: "20:00"},
	}))

	day, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"18:00"}, slotTimes(day))
}

func TestDayAvailabilityFullyBookedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "19:00", 6)

	day, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 5})
	require.NoError(t, err)

	// two-hour slots: 12:00 at lunch and 19:00 in the evening
	assert.Equal(t, []string{"12:00", "19:00"}, slotTimes(day))
	assert.True(t, day.Slots[0].Available)
	assert.False(t, day.Slots[1].Available)
	assert.Zero(t, day.Slots[1].AvailableTableCount)
}

func TestCapacityMonotonicity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, "12:00", 2)
	f.book(t, "12:00", 4)
	f.book(t, "19:00", 6)
	f.book(t, "19:30", 2)

	var prev *DayAvailability
	for k := 1; k <= 8; k++ {
		day, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: k})
		require.NoError(t, err)

		if prev != nil && prev.DurationMinutes == day.DurationMinutes {
			require.Equal(t, slotTimes(prev), slotTimes(day))
			for i := range day.Slots {
				assert.LessOrEqual(t, day.Slots[i].AvailableTableCount, prev.Slots[i].AvailableTableCount,
					"party %d at %s", k, day.Slots[i].Time)
			}
		}
		if prev != nil {
			assert.LessOrEqual(t, countAvailable(day), countAvailable(prev), "party %d", k)
		}
		prev = day
	}
}

func countAvailable(day *DayAvailability) int {
	n := 0
	for _, s := range day.Slots {
		if s.Available {
			n++
		}
	}
	return n
}

func TestReadsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "19:00", 2)

	q := SlotQuery{Date: christmas, Time: "19:00", PartySize: 2}
	first, err := f.availability.CheckSlotAvailability(ctx, q)
	require.NoError(t, err)
	second, err := f.availability.CheckSlotAvailability(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	d1, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 3})
	require.NoError(t, err)
	d2, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 3})
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestAvailableTablesExcludesOwnReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.book(t, "19:00", 6)

	ok, err := f.availability.CheckSlotAvailability(ctx, SlotQuery{Date: christmas, Time: "19:30", PartySize: 6})
	require.NoError(t, err)
	assert.False(t, ok)

	tables, err := f.availability.AvailableTables(ctx, SlotQuery{
		Date: christmas, Time: "19:30", PartySize: 6, ExcludeReservationID: &r.ID,
	})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 4, tables[0].Number)
}

func TestAvailabilityValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.availability.GetDayAvailability(ctx, DayQuery{Date: christmas, PartySize: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPartySize)

	_, err = f.availability.GetDayAvailability(ctx, DayQuery{Date: "tomorrow", PartySize: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidDateOrTime)

	_, err = f.availability.CheckSlotAvailability(ctx, SlotQuery{Date: christmas, Time: "7pm", PartySize: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidDateOrTime)

	_, err = f.availability.CheckSlotAvailability(ctx, SlotQuery{RestaurantID: 404, Date: christmas, Time: "19:00", PartySize: 2})
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}
