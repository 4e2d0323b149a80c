package reservation

import (
	"time"

	"github.com/BruksfildServices01/table-booking/internal/models"
)

// DefaultDaySchedule is used for weekdays the restaurant has not configured:
// lunch and dinner service Monday to Saturday, closed on Sunday.
func DefaultDaySchedule(weekday time.Weekday) DaySchedule {
	if weekday == time.Sunday {
		return DaySchedule{Closed: true}
	}
	return DaySchedule{
		Lunch:   &Window{Open: "12:00", Close: "14:30"},
		Evening: &Window{Open: "19:00", Close: "22:30"},
	}
}

// ScheduleFromOpeningHours converts a stored weekday row; nil means not configured.
func ScheduleFromOpeningHours(oh *models.OpeningHours, weekday time.Weekday) DaySchedule {
	if oh == nil {
		return DefaultDaySchedule(weekday)
	}
	if oh.Closed {
		return DaySchedule{Closed: true}
	}

	var day DaySchedule
	if oh.LunchOpen != "" && oh.LunchClose != "" {
		day.Lunch = &Window{Open: oh.LunchOpen, Close: oh.LunchClose}
	}
	if oh.EveningOpen != "" && oh.EveningClose != "" {
		day.Evening = &Window{Open: oh.EveningOpen, Close: oh.EveningClose}
	}
	return day
}
