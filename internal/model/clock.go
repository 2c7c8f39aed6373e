package model

import (
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision, e.g. an opening hour.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24h).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Before reports whether c is strictly earlier in the day than o.
func (c ClockTime) Before(o ClockTime) bool {
	return c.Hour*60+c.Minute < o.Hour*60+o.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Window returns the interval [from, to) on the wall clock date of day,
// in day's location.
func Window(day time.Time, from, to ClockTime) TimeInterval {
	d := DateOf(day)
	return TimeInterval{Start: d.At(from, day.Location()), End: d.At(to, day.Location())}
}
