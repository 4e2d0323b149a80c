package timezone

import "time"

const DefaultTimezone = "Europe/Paris"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC, for unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func In(t time.Time, tz string) time.Time {
	return t.In(Location(tz))
}

func NowIn(tz string) time.Time {
	return In(time.Now(), tz)
}
