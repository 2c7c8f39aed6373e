// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// scheduling service and the HTTP handlers to distinguish between different
// failure scenarios. ErrNotFound signals that a referenced movie, room or
// show does not exist, while ErrConflict signals that an optimistic write
// lost a race against a concurrent writer.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert presents a partition version
// that is no longer current. The caller may re-read and retry. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("concurrent modification occurred; please try again")

// Entity specific not-found errors. All of them match ErrNotFound with
// errors.Is.
var (
	ErrMovieNotFound = fmt.Errorf("movie %w", ErrNotFound)
	ErrRoomNotFound  = fmt.Errorf("room %w", ErrNotFound)
	ErrShowNotFound  = fmt.Errorf("show %w", ErrNotFound)
)
