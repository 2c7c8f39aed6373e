package model

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a catalog entry that can be scheduled into a room.  The
// scheduling engine treats a movie as immutable once it has been
// created.
//
// Fields:
//
//	ID         – unique identifier.
//	Title      – display title.
//	Duration   – screening length, minute precision.
//	Requires3D – the movie can only be shown in a 3D capable room.
//	Premiere   – premiere screenings are restricted to the premiere slot.
type Movie struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	Duration   time.Duration `json:"duration"`
	Requires3D bool          `json:"requires_3d"`
	Premiere   bool          `json:"premiere"`
}
