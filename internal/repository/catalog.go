package repository

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// catalog is a concurrency-safe keyed collection shared by the movie and
// room repositories.
type catalog[T any] struct {
	mu       sync.RWMutex
	entries  map[uuid.UUID]T
	notFound error
}

func newCatalog[T any](notFound error) *catalog[T] {
	return &catalog[T]{entries: make(map[uuid.UUID]T), notFound: notFound}
}

func (c *catalog[T]) put(id uuid.UUID, v T) {
	c.mu.Lock()
	c.entries[id] = v
	c.mu.Unlock()
}

func (c *catalog[T]) get(id uuid.UUID) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[id]
	if !ok {
		var zero T
		return zero, c.notFound
	}
	return v, nil
}

// list returns all entries ordered by the given key.
func (c *catalog[T]) list(key func(T) string) []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.entries))
	for _, v := range c.entries {
		out = append(out, v)
	}
	c.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

func (c *catalog[T]) remove(id uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}
