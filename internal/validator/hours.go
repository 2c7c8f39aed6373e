package validator

import (
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// Violation messages of the hour rules.
const (
	MsgFacilityHours = "Show must run within facility opening hours"
	MsgPremiereHours = "Premiere shows must run within the premiere slot"
)

// FacilityHours requires the screening [start, start+duration) to lie
// within [open, closing) of the start day.  Cleaning may run past closing.
func FacilityHours(open, closing model.ClockTime) Validator {
	return func(movie model.Movie, _ model.Room, start time.Time) string {
		if !model.Window(start, open, closing).Contains(model.Screening(start, movie)) {
			return MsgFacilityHours
		}
		return ""
	}
}

// PremiereHours applies only to premiere movies and requires their
// screening to lie within [from, to) of the start day.  Cleaning is
// excluded like for FacilityHours.
func PremiereHours(from, to model.ClockTime) Validator {
	return func(movie model.Movie, _ model.Room, start time.Time) string {
		if !movie.Premiere {
			return ""
		}
		if !model.Window(start, from, to).Contains(model.Screening(start, movie)) {
			return MsgPremiereHours
		}
		return ""
	}
}
