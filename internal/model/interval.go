package model

import "time"

// TimeInterval is the half-open period [Start, End).  It is a plain value;
// none of its methods mutate it.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether other lies within t, boundaries included.
func (t TimeInterval) Contains(other TimeInterval) bool {
	return !t.Start.After(other.Start) && !t.End.Before(other.End)
}

// Overlaps reports whether t and other share any time.  Intervals that
// only touch (t.End == other.Start) do not overlap, so back-to-back
// bookings are legal.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	if t.Contains(other) {
		return true
	}
	if t.Start.Before(other.End) && !t.Start.Before(other.Start) {
		return true
	}
	return t.End.After(other.Start) && !t.End.After(other.End)
}

// Duration returns End - Start.
func (t TimeInterval) Duration() time.Duration { return t.End.Sub(t.Start) }

// Screening is [start, start+movie.Duration).
func Screening(start time.Time, movie Movie) TimeInterval {
	return TimeInterval{Start: start, End: start.Add(movie.Duration)}
}

// Occupied is [start, start+movie.Duration+room.CleaningDuration), the
// whole span a show blocks its room.
func Occupied(start time.Time, movie Movie, room Room) TimeInterval {
	return TimeInterval{Start: start, End: start.Add(movie.Duration + room.CleaningDuration)}
}

// Cleaning is the trailing part of Occupied after the screening ends.
func Cleaning(start time.Time, movie Movie, room Room) TimeInterval {
	end := start.Add(movie.Duration)
	return TimeInterval{Start: end, End: end.Add(room.CleaningDuration)}
}
