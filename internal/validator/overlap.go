package validator

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// MsgOverlap is reported when the candidate collides with a scheduled show.
const MsgOverlap = "Planned show overlaps an existing one"

// ShowLister is the read side of the show store the overlap rule needs.
type ShowLister interface {
	GetShows(roomID uuid.UUID, date model.Date) []model.Show
}

// Overlap rejects a candidate whose occupied interval (screening plus
// cleaning) overlaps the occupied interval of any show already in the
// same room on the same day.  Touching intervals are allowed.
func Overlap(shows ShowLister) Validator {
	return func(movie model.Movie, room model.Room, start time.Time) string {
		planned := model.Occupied(start, movie, room)
		for _, s := range shows.GetShows(room.ID, model.DateOf(start)) {
			if s.Occupied().Overlaps(planned) {
				return MsgOverlap
			}
		}
		return ""
	}
}
