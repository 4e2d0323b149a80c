package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

func TestSlotDuration(t *testing.T) {
	assert.Equal(t, 90, SlotDuration(1))
	assert.Equal(t, 90, SlotDuration(4))
	assert.Equal(t, 120, SlotDuration(5))
	assert.Equal(t, 120, SlotDuration(12))
}

func TestResolveDuration(t *testing.T) {
	assert.Equal(t, 90, ResolveDuration(2, 0))
	assert.Equal(t, 120, ResolveDuration(6, -10))
	assert.Equal(t, 60, ResolveDuration(2, 60))
	assert.Equal(t, MinDurationMinutes, ResolveDuration(2, 5))
	assert.Equal(t, MaxDurationMinutes, ResolveDuration(2, 600))
}

func TestGenerateSlotsSingleLunchSlot(t *testing.T) {
	day := DaySchedule{Lunch: &Window{Open: "12:00", Close: "14:30"}}

	assert.Equal(t, []string{"12:00"}, GenerateSlots(day, 90, 30))
}

func TestGenerateSlotsWindowsAreIndependent(t *testing.T) {
	day := DaySchedule{
		Lunch:   &Window{Open: "12:00", Close: "14:30"},
		Evening: &Window{Open: "19:00", Close: "22:30"},
	}

	slots := GenerateSlots(day, 90, 30)

	assert.Equal(t, []string{"12:00", "19:00", "21:00"}, slots)
}

func TestGenerateSlotsEdgeCases(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		day := DaySchedule{Closed: true, Lunch: &Window{Open: "12:00", Close: "15:00"}}
		assert.Empty(t, GenerateSlots(day, 90, 30))
	})

	t.Run("window shorter than a slot", func(t *testing.T) {
		day := DaySchedule{
			Lunch:   &Window{Open: "12:00", Close: "13:00"},
			Evening: &Window{Open: "19:00", Close: "21:00"},
		}
		assert.Equal(t, []string{"19:00"}, GenerateSlots(day, 90, 0))
	})

	t.Run("no buffer packs slots back to back", func(t *testing.T) {
		day := DaySchedule{Evening: &Window{Open: "18:00", Close: "21:00"}}
		assert.Equal(t, []string{"18:00", "19:30"}, GenerateSlots(day, 90, 0))
	})

	t.Run("non positive step", func(t *testing.T) {
		day := DaySchedule{Lunch: &Window{Open: "12:00", Close: "14:00"}}
		assert.Empty(t, GenerateSlots(day, 0, 0))
	})

	t.Run("malformed window is skipped", func(t *testing.T) {
		day := DaySchedule{
			Lunch:   &Window{Open: "noon", Close: "14:00"},
			Evening: &Window{Open: "19:00", Close: "20:30"},
		}
		assert.Equal(t, []string{"19:00"}, GenerateSlots(day, 90, 30))
	})
}

func TestGenerateSlotsProperties(t *testing.T) {
	windows := []Window{
		{Open: "11:30", Close: "15:00"},
		{Open: "18:15", Close: "23:45"},
		{Open: "12:00", Close: "12:45"},
	}

	for _, w := range windows {
		for _, duration := range []int{30, 90, 120} {
			for _, buffer := range []int{0, 15, 30} {
				w := w
				slots := GenerateSlots(DaySchedule{Lunch: &w}, duration, buffer)
				closeAt, _ := ParseClock(w.Close)
				open, _ := ParseClock(w.Open)

				prev := -1
				for _, s := range slots {
					start, err := ParseClock(s)
					require.NoError(t, err)
					assert.LessOrEqual(t, start+duration, closeAt)
					if prev >= 0 {
						assert.Equal(t, duration+buffer, start-prev)
					} else {
						assert.Equal(t, open, start)
					}
					prev = start
				}

				next := open
				if prev >= 0 {
					next = prev + duration + buffer
				}
				assert.Greater(t, next+duration, closeAt, "a further slot would still fit")

				assert.Equal(t, slots, GenerateSlots(DaySchedule{Lunch: &w}, duration, buffer))
			}
		}
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("19:05")
	require.NoError(t, err)
	assert.Equal(t, 19*60+5, m)
	assert.Equal(t, "19:05", FormatClock(m))

	for _, bad := range []string{"", "25:00", "12:60", "12", "12:5", "ab:cd"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-25")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d.Weekday())

	_, err = ParseDate("25/12/2024")
	assert.ErrorIs(t, err, ErrInvalidDateOrTime)
}

func TestScheduleFromOpeningHours(t *testing.T) {
	assert.True(t, ScheduleFromOpeningHours(nil, time.Sunday).Closed)
	assert.NotNil(t, ScheduleFromOpeningHours(nil, time.Monday).Evening)

	lunchOnly := ScheduleFromOpeningHours(&models.OpeningHours{
		LunchOpen:  "11:00",
		LunchClose: "15:00",
	}, time.Monday)
	assert.Nil(t, lunchOnly.Evening)
	assert.Equal(t, "11:00", lunchOnly.Lunch.Open)

	closed := ScheduleFromOpeningHours(&models.OpeningHours{Closed: true, LunchOpen: "11:00", LunchClose: "15:00"}, time.Monday)
	assert.True(t, closed.Closed)
}
