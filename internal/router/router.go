package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/handler"
)

// RegisterRoutes registers routes that sit outside the versioned API.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the movie and room catalog under /v1.  mw is
// applied to the catalog routes only; the response cache goes here.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	movies := e.Group("/v1/movies", mw...)
	movies.GET("", h.ListMovies)
	movies.POST("", h.CreateMovie)
	movies.GET("/:id", h.GetMovie)
	movies.DELETE("/:id", h.DeleteMovie)

	rooms := e.Group("/v1/rooms", mw...)
	rooms.GET("", h.ListRooms)
	rooms.POST("", h.CreateRoom)
	rooms.GET("/:id", h.GetRoom)
	rooms.DELETE("/:id", h.DeleteRoom)
}

// RegisterSchedule registers the scheduling endpoints.  Schedule reads are
// never cached: every write changes them.
func RegisterSchedule(e *echo.Echo, h *handler.ScheduleHandler) {
	g := e.Group("/v1/schedule")
	g.GET("/rooms/:room_id/days/:date", h.RoomSchedule)
	g.POST("/shows", h.CreateShow)
	g.DELETE("/shows/:id", h.CancelShow)
	g.PUT("/shows/:id", h.ChangeShow)
	g.PATCH("/shows/:id", h.ChangeShow) // alias for clients that use PATCH
}
