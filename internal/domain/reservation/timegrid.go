package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	SmallPartyMaxSize = 4

	SmallPartyDurationMinutes = 90
	LargePartyDurationMinutes = 120

	MinDurationMinutes = 30
	MaxDurationMinutes = 240

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Window is one service (lunch or evening) as HH:MM bounds.
type Window struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type DaySchedule struct {
	Lunch   *Window `json:"lunch,omitempty"`
	Evening *Window `json:"evening,omitempty"`
	Closed  bool    `json:"closed"`
}

// SlotDuration is the default table occupancy for a party.
func SlotDuration(partySize int) int {
	if partySize <= SmallPartyMaxSize {
		return SmallPartyDurationMinutes
	}
	return LargePartyDurationMinutes
}

// ResolveDuration keeps a caller-supplied duration within bounds and falls back to
// SlotDuration when none is given.
func ResolveDuration(partySize, requested int) int {
	if requested <= 0 {
		return SlotDuration(partySize)
	}
	if requested < MinDurationMinutes {
		return MinDurationMinutes
	}
	if requested > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return requested
}

// GenerateSlots lists the bookable start times of a day. Each window is walked
// independently in steps of duration+buffer, keeping starts whose slot ends by close.
func GenerateSlots(day DaySchedule, durationMinutes, bufferMinutes int) []string {
	slots := []string{}
	if day.Closed {
		return slots
	}

	step := durationMinutes + bufferMinutes
	if durationMinutes <= 0 || step <= 0 {
		return slots
	}

	for _, w := range []*Window{day.Lunch, day.Evening} {
		if w == nil {
			continue
		}
		open, err := ParseClock(w.Open)
		if err != nil {
			continue
		}
		closeAt, err := ParseClock(w.Close)
		if err != nil {
			continue
		}
		for start := open; start+durationMinutes <= closeAt; start += step {
			slots = append(slots, FormatClock(start))
		}
	}

	return slots
}

// ParseClock converts HH:MM into minutes since midnight.
func ParseClock(hm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}

	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate validates a calendar day in YYYY-MM-DD form.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDateOrTime
	}
	return d, nil
}
