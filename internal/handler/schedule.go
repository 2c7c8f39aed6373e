package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

// StartTimeLayout is the accepted form of start_time, read as wall clock
// time in the facility's location.  RFC 3339 timestamps are accepted too.
const StartTimeLayout = "2006-01-02T15:04"

// ScheduleHandler exposes the scheduling engine.
type ScheduleHandler struct {
	Service  *service.SchedulingService // Service runs scheduling operations
	Location *time.Location             // Location is the facility time zone
}

// NewScheduleHandler constructs a ScheduleHandler and panics if svc is nil.
// A nil loc means UTC.
func NewScheduleHandler(svc *service.SchedulingService, loc *time.Location) *ScheduleHandler {
	if svc == nil {
		panic("nil service passed to NewScheduleHandler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleHandler{Service: svc, Location: loc}
}

func (h *ScheduleHandler) parseStart(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(StartTimeLayout, s, h.Location); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(h.Location), true
	}
	return time.Time{}, false
}

type scheduleItemResponse struct {
	Kind       model.ItemKind `json:"kind"`
	ShowID     uuid.UUID      `json:"show_id"`
	MovieID    uuid.UUID      `json:"movie_id,omitempty"`
	MovieTitle string         `json:"movie_title,omitempty"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
}

// RoomSchedule handles GET /v1/schedule/rooms/:room_id/days/:date and
// lists every show of the day, each followed by its cleaning slot.
func (h *ScheduleHandler) RoomSchedule(c echo.Context) error {
	roomID, ok := parseID(c, "room_id")
	if !ok {
		return badRequest(c, "invalid room_id")
	}
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		return badRequest(c, "invalid date, expected "+model.DateLayout)
	}
	items, err := h.Service.GetRoomShows(c.Request().Context(), roomID, date)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]scheduleItemResponse, 0, len(items))
	for _, it := range items {
		r := scheduleItemResponse{
			Kind:   it.Kind,
			ShowID: it.Show.ID,
			Start:  it.Period.Start.In(h.Location).Format(StartTimeLayout),
			End:    it.Period.End.In(h.Location).Format(StartTimeLayout),
		}
		if it.Kind == model.ItemShow {
			r.MovieID = it.Show.Movie.ID
			r.MovieTitle = it.Show.Movie.Title
		}
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateShow handles POST /v1/schedule/shows
func (h *ScheduleHandler) CreateShow(c echo.Context) error {
	var body struct {
		MovieID   string `json:"movie_id"`
		RoomID    string `json:"room_id"`
		StartTime string `json:"start_time"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	movieID, err := uuid.Parse(body.MovieID)
	if err != nil {
		return badRequest(c, "invalid movie_id")
	}
	roomID, err := uuid.Parse(body.RoomID)
	if err != nil {
		return badRequest(c, "invalid room_id")
	}
	start, ok := h.parseStart(body.StartTime)
	if !ok {
		return badRequest(c, "invalid start_time, expected "+StartTimeLayout)
	}
	id, err := h.Service.ScheduleShow(c.Request().Context(), movieID, roomID, start)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]uuid.UUID{"id": id})
}

// CancelShow handles DELETE /v1/schedule/shows/:id.  Unknown ids still
// answer 204.
func (h *ScheduleHandler) CancelShow(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Service.CancelShow(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeShow handles PUT/PATCH /v1/schedule/shows/:id.  Omitted fields keep
// the show's current value; the response carries the id of the new show.
func (h *ScheduleHandler) ChangeShow(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var body struct {
		RoomID    *string `json:"room_id"`
		StartTime *string `json:"start_time"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	var newRoom *uuid.UUID
	if body.RoomID != nil {
		r, err := uuid.Parse(*body.RoomID)
		if err != nil {
			return badRequest(c, "invalid room_id")
		}
		newRoom = &r
	}
	var newStart *time.Time
	if body.StartTime != nil {
		t, ok := h.parseStart(*body.StartTime)
		if !ok {
			return badRequest(c, "invalid start_time, expected "+StartTimeLayout)
		}
		newStart = &t
	}
	newID, err := h.Service.ChangeShow(c.Request().Context(), id, newRoom, newStart)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uuid.UUID{"id": newID})
}
