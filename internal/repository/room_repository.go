package repository

import (
	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// RoomRepo keeps the room catalog in memory.
type RoomRepo struct {
	c *catalog[model.Room]
}

// NewRoomRepo constructs an empty RoomRepo.
func NewRoomRepo() *RoomRepo {
	return &RoomRepo{c: newCatalog[model.Room](ErrRoomNotFound)}
}

// Add stores room and returns its id.  A zero id is replaced by a fresh UUID.
func (r *RoomRepo) Add(room model.Room) uuid.UUID {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	r.c.put(room.ID, room)
	return room.ID
}

// Get returns the room with the given id or ErrRoomNotFound.
func (r *RoomRepo) Get(id uuid.UUID) (model.Room, error) {
	return r.c.get(id)
}

// List returns all rooms ordered by name.
func (r *RoomRepo) List() []model.Room {
	return r.c.list(func(room model.Room) string { return room.Name })
}

// Remove deletes the room.  Removing an unknown id is a no-op.
func (r *RoomRepo) Remove(id uuid.UUID) {
	r.c.remove(id)
}
