package validator

import (
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// MsgNo3D is reported when a 3D movie is planned in a room without 3D.
const MsgNo3D = "Selected room does not have 3D available"

// ThreeD rejects 3D movies in rooms that cannot project them.
func ThreeD() Validator {
	return func(movie model.Movie, room model.Room, _ time.Time) string {
		if movie.Requires3D && !room.Supports3D {
			return MsgNo3D
		}
		return ""
	}
}
