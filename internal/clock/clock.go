// Package clock handles the timestamp strings carried by flight offers:
// parsing them, extracting the wall-clock time of day and matching it
// against time windows.
package clock

import (
	"fmt"
	"time"
)

// TimestampLayout is the offset-less ISO-8601 form used for offer times.
const TimestampLayout = "2006-01-02T15:04:05"

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp accepts the timestamp shapes seen from the provider and the store.
// Values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: "unable to parse time string",
	}
}

// FormatTimestamp renders t as wall-clock time without an offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// TimeOfDay returns the HH:MM part of an ISO-8601 timestamp as written,
// without any timezone conversion. ok is false when there is none.
func TimeOfDay(ts string) (hhmm string, ok bool) {
	if len(ts) < 16 || (ts[10] != 'T' && ts[10] != ' ') || ts[13] != ':' {
		return "", false
	}
	return ts[11:16], true
}

// InWindow reports whether hhmm falls inside [from, to], both inclusive.
// When from is later than to the window spans midnight, so 22:00-04:00
// matches 23:30 and 04:00 but not 10:00.
func InWindow(hhmm, from, to string) bool {
	if from <= to {
		return hhmm >= from && hhmm <= to
	}
	return hhmm >= from || hhmm <= to
}

// DayRange returns [start of day, start of next day) in UTC for a YYYY-MM-DD date.
func DayRange(date string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// FormatDuration renders minutes as "2h 20m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
