// Package repository contains data access logic for the scheduling domain.
// This file defines the show store. Shows are grouped into partitions keyed
// by (room, calendar date); every partition carries a version counter that
// writers must present when inserting, which gives optimistic concurrency
// control over the partition's contents.
package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// partition holds the shows of one (room, date) pair.  mu serialises the
// version check and the append so that one insert per version wins.
type partition struct {
	mu      sync.Mutex
	shows   []model.Show
	version int
}

// ShowRepo manages the in-memory show store.  Locks are striped by
// partition key: writers on different rooms or days never contend.  The
// store-level mutex only guards the two maps.  Lock order is partition
// first, then store.
type ShowRepo struct {
	mu         sync.RWMutex
	partitions map[model.PartitionKey]*partition
	byID       map[uuid.UUID]model.Show
}

// NewShowRepo constructs an empty ShowRepo.
func NewShowRepo() *ShowRepo {
	return &ShowRepo{
		partitions: make(map[model.PartitionKey]*partition),
		byID:       make(map[uuid.UUID]model.Show),
	}
}

// lookup returns the partition for key or nil if it was never written.
func (r *ShowRepo) lookup(key model.PartitionKey) *partition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.partitions[key]
}

// partition returns the partition for key, creating it when absent.
func (r *ShowRepo) partition(key model.PartitionKey) *partition {
	if p := r.lookup(key); p != nil {
		return p
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partitions[key]
	if !ok {
		p = &partition{}
		r.partitions[key] = p
	}
	return p
}

// GetShows returns a copy of the shows scheduled in a room on a date, in
// insertion order.  It returns an empty slice when there are none.
func (r *ShowRepo) GetShows(roomID uuid.UUID, date model.Date) []model.Show {
	p := r.lookup(model.PartitionKey{RoomID: roomID, Date: date})
	if p == nil {
		return []model.Show{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Show, len(p.shows))
	copy(out, p.shows)
	return out
}

// GetVersion returns the current version of a partition, 0 if the
// partition was never written.
func (r *ShowRepo) GetVersion(roomID uuid.UUID, date model.Date) int {
	p := r.lookup(model.PartitionKey{RoomID: roomID, Date: date})
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// AddShow appends show to its partition if expectedVersion is still the
// partition's current version, then bumps the version by one.  On a
// mismatch it returns ErrConflict and changes nothing.  The store does not
// look at the show's times; overlap checks belong to the caller.
func (r *ShowRepo) AddShow(show model.Show, expectedVersion int) (uuid.UUID, error) {
	p := r.partition(show.Key())
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.version != expectedVersion {
		return uuid.Nil, ErrConflict
	}
	p.shows = append(p.shows, show)
	p.version++

	r.mu.Lock()
	r.byID[show.ID] = show
	r.mu.Unlock()
	return show.ID, nil
}

// RemoveShow deletes the show with the given id.  Unknown ids are ignored.
// The partition version is left untouched.
func (r *ShowRepo) RemoveShow(id uuid.UUID) {
	r.mu.RLock()
	show, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return
	}

	p := r.lookup(show.Key())
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()

	for i := range p.shows {
		if p.shows[i].ID == id {
			p.shows = append(p.shows[:i:i], p.shows[i+1:]...)
			break
		}
	}
}

// GetShow returns the show with the given id or ErrShowNotFound.
func (r *ShowRepo) GetShow(id uuid.UUID) (model.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	show, ok := r.byID[id]
	if !ok {
		return model.Show{}, ErrShowNotFound
	}
	return show, nil
}
