package repository

import (
	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// MovieRepo keeps the movie catalog in memory.
type MovieRepo struct {
	c *catalog[model.Movie]
}

// NewMovieRepo constructs an empty MovieRepo.
func NewMovieRepo() *MovieRepo {
	return &MovieRepo{c: newCatalog[model.Movie](ErrMovieNotFound)}
}

// Add stores m and returns its id.  A zero id is replaced by a fresh UUID.
func (r *MovieRepo) Add(m model.Movie) uuid.UUID {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.c.put(m.ID, m)
	return m.ID
}

// Get returns the movie with the given id or ErrMovieNotFound.
func (r *MovieRepo) Get(id uuid.UUID) (model.Movie, error) {
	return r.c.get(id)
}

// List returns all movies ordered by title.
func (r *MovieRepo) List() []model.Movie {
	return r.c.list(func(m model.Movie) string { return m.Title })
}

// Remove deletes the movie.  Removing an unknown id is a no-op.  Shows
// already scheduled keep their own snapshot of the movie.
func (r *MovieRepo) Remove(id uuid.UUID) {
	r.c.remove(id)
}
