package model

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a screening room.  After every show the room needs
// CleaningDuration before the next show may start.
//
// Fields:
//
//	ID               – unique identifier.
//	Name             – display name.
//	CleaningDuration – time reserved after each screening, minute precision.
//	Supports3D       – the room has 3D projection available.
type Room struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	CleaningDuration time.Duration `json:"cleaning_duration"`
	Supports3D       bool          `json:"supports_3d"`
}
