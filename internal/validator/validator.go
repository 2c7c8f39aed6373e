// Package validator implements the business rules a show must satisfy
// before it is inserted into the show store.
//
// A Validator is a pure function of the movie, the room and the candidate
// start time. It returns a violation message, or the empty string when the
// rule passes. A Chain runs every validator, never stopping at the first
// failure, so the caller receives the complete list of violations.
package validator

import (
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// Validator checks one business rule.  An empty result means the rule
// passes.
type Validator func(movie model.Movie, room model.Room, start time.Time) string

// Chain is an ordered set of validators.
type Chain []Validator

// Validate runs every validator in order and returns all violation
// messages, nil when the candidate passes every rule.
func (c Chain) Validate(movie model.Movie, room model.Room, start time.Time) []string {
	var violations []string
	for _, v := range c {
		if msg := v(movie, room, start); msg != "" {
			violations = append(violations, msg)
		}
	}
	return violations
}

// Hours describes the configurable windows used by the hour validators.
type Hours struct {
	OpenFrom     model.ClockTime
	OpenTo       model.ClockTime
	PremiereFrom model.ClockTime
	PremiereTo   model.ClockTime
}

// Default assembles the standard chain: overlap, 3D availability,
// facility hours, premiere hours.
func Default(shows ShowLister, h Hours) Chain {
	return Chain{
		Overlap(shows),
		ThreeD(),
		FacilityHours(h.OpenFrom, h.OpenTo),
		PremiereHours(h.PremiereFrom, h.PremiereTo),
	}
}
