package model

import (
	"time"

	"github.com/google/uuid"
)

// Show represents a scheduled screening of a movie in a room.  Room and
// Movie are value snapshots taken when the show was scheduled, so a show
// keeps its occupied interval even if the catalog entry changes or goes
// away later.
type Show struct {
	ID        uuid.UUID `json:"id"`
	Room      Room      `json:"room"`
	Movie     Movie     `json:"movie"`
	StartTime time.Time `json:"start_time"`
}

// Date returns the calendar date the show is partitioned under.
func (s Show) Date() Date { return DateOf(s.StartTime) }

// Key returns the (room, date) partition key of the show.
func (s Show) Key() PartitionKey {
	return PartitionKey{RoomID: s.Room.ID, Date: s.Date()}
}

// Screening returns [start, start+duration).
func (s Show) Screening() TimeInterval { return Screening(s.StartTime, s.Movie) }

// Occupied returns the screening plus the trailing cleaning time.
func (s Show) Occupied() TimeInterval { return Occupied(s.StartTime, s.Movie, s.Room) }

// Cleaning returns [start+duration, start+duration+cleaning).
func (s Show) Cleaning() TimeInterval { return Cleaning(s.StartTime, s.Movie, s.Room) }

// PartitionKey groups shows by room and calendar date.  Each partition
// carries its own version counter in the show store.
type PartitionKey struct {
	RoomID uuid.UUID
	Date   Date
}

// ItemKind distinguishes the entries of a room schedule.
type ItemKind string

const (
	ItemShow     ItemKind = "show"
	ItemCleaning ItemKind = "cleaning"
)

// ScheduleItem is one display entry of a room schedule: either the
// screening of a show or the cleaning period that follows it.
type ScheduleItem struct {
	Kind   ItemKind
	Show   Show
	Period TimeInterval
}
