package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

// CatalogHandler serves the movie and room catalogs.
type CatalogHandler struct {
	Movies *repository.MovieRepo // Movies stores the movie catalog
	Rooms  *repository.RoomRepo  // Rooms stores the room catalog
}

// NewCatalogHandler constructs a CatalogHandler and panics if any dependency is nil
func NewCatalogHandler(movies *repository.MovieRepo, rooms *repository.RoomRepo) *CatalogHandler {
	if movies == nil || rooms == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies, Rooms: rooms}
}

// movieResponse is the wire form of a movie; durations travel as minutes.
type movieResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Requires3D      bool      `json:"requires_3d"`
	Premiere        bool      `json:"premiere"`
}

func toMovieResponse(m model.Movie) movieResponse {
	return movieResponse{
		ID:              m.ID,
		Title:           m.Title,
		DurationMinutes: int(m.Duration / time.Minute),
		Requires3D:      m.Requires3D,
		Premiere:        m.Premiere,
	}
}

type roomResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CleaningMinutes int       `json:"cleaning_minutes"`
	Supports3D      bool      `json:"supports_3d"`
}

func toRoomResponse(r model.Room) roomResponse {
	return roomResponse{
		ID:              r.ID,
		Name:            r.Name,
		CleaningMinutes: int(r.CleaningDuration / time.Minute),
		Supports3D:      r.Supports3D,
	}
}

// parseID reads a uuid path parameter.
func parseID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

// CreateMovie handles POST /v1/movies
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Title           string `json:"title"`
		DurationMinutes int    `json:"duration_minutes"`
		Requires3D      bool   `json:"requires_3d"`
		Premiere        bool   `json:"premiere"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	title := strings.TrimSpace(body.Title)
	if title == "" || body.DurationMinutes <= 0 {
		return badRequest(c, "title is required and duration_minutes must be greater than zero")
	}
	m := model.Movie{
		Title:      title,
		Duration:   time.Duration(body.DurationMinutes) * time.Minute,
		Requires3D: body.Requires3D,
		Premiere:   body.Premiere,
	}
	m.ID = h.Movies.Add(m)
	return c.JSON(http.StatusCreated, toMovieResponse(m))
}

// ListMovies handles GET /v1/movies
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies := h.Movies.List()
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

// GetMovie handles GET /v1/movies/:id
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	m, err := h.Movies.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toMovieResponse(m))
}

// DeleteMovie handles DELETE /v1/movies/:id.  Already scheduled shows keep
// their copy of the movie.
func (h *CatalogHandler) DeleteMovie(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if _, err := h.Movies.Get(id); err != nil {
		return writeError(c, err)
	}
	h.Movies.Remove(id)
	return c.NoContent(http.StatusNoContent)
}

// CreateRoom handles POST /v1/rooms
func (h *CatalogHandler) CreateRoom(c echo.Context) error {
	var body struct {
		Name            string `json:"name"`
		CleaningMinutes int    `json:"cleaning_minutes"`
		Supports3D      bool   `json:"supports_3d"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.CleaningMinutes < 0 {
		return badRequest(c, "name is required and cleaning_minutes must not be negative")
	}
	r := model.Room{
		Name:             name,
		CleaningDuration: time.Duration(body.CleaningMinutes) * time.Minute,
		Supports3D:       body.Supports3D,
	}
	r.ID = h.Rooms.Add(r)
	return c.JSON(http.StatusCreated, toRoomResponse(r))
}

// ListRooms handles GET /v1/rooms
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	rooms := h.Rooms.List()
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// GetRoom handles GET /v1/rooms/:id
func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	r, err := h.Rooms.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResponse(r))
}

// DeleteRoom handles DELETE /v1/rooms/:id
func (h *CatalogHandler) DeleteRoom(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if _, err := h.Rooms.Get(id); err != nil {
		return writeError(c, err)
	}
	h.Rooms.Remove(id)
	return c.NoContent(http.StatusNoContent)
}
