// Package service holds the scheduling engine and the adapters it talks
// to. The engine resolves movies and rooms, runs the validator chain, and
// inserts shows into the versioned show store, retrying the whole cycle
// when a concurrent writer got to the partition first.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/validator"
)

// MovieCatalog resolves movies by id.
type MovieCatalog interface {
	Get(id uuid.UUID) (model.Movie, error)
}

// RoomCatalog resolves rooms by id.
type RoomCatalog interface {
	Get(id uuid.UUID) (model.Room, error)
}

// ShowStore is the versioned show store the engine writes through.
// *repository.ShowRepo implements it.
type ShowStore interface {
	GetShows(roomID uuid.UUID, date model.Date) []model.Show
	GetVersion(roomID uuid.UUID, date model.Date) int
	AddShow(show model.Show, expectedVersion int) (uuid.UUID, error)
	RemoveShow(id uuid.UUID)
	GetShow(id uuid.UUID) (model.Show, error)
}

// SchedulingService is the scheduling engine.  It is safe for concurrent
// use; all coordination happens in the show store.
type SchedulingService struct {
	movies     MovieCatalog
	rooms      RoomCatalog
	shows      ShowStore
	validators validator.Chain
	maxRetries int
	notifier   Notifier
	log        *zap.Logger
	now        func() time.Time
}

// Option customises a SchedulingService.
type Option func(*SchedulingService)

// WithNotifier sets the event sink.  The default discards events.
func WithNotifier(n Notifier) Option {
	return func(s *SchedulingService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger.  The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *SchedulingService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSchedulingService constructs the engine.  maxRetries is the number of
// additional attempts after a version conflict, so an insert is tried at
// most maxRetries+1 times.  It panics if any dependency is nil.
func NewSchedulingService(movies MovieCatalog, rooms RoomCatalog, shows ShowStore, validators validator.Chain, maxRetries int, opts ...Option) *SchedulingService {
	if movies == nil || rooms == nil || shows == nil {
		panic("nil dependency passed to NewSchedulingService")
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	s := &SchedulingService{
		movies:     movies,
		rooms:      rooms,
		shows:      shows,
		validators: validators,
		maxRetries: maxRetries,
		notifier:   NopNotifier{},
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleShow schedules movieID in roomID at start and returns the new
// show id.  It fails with repository.ErrNotFound if the movie or room is
// unknown, with a *ValidationError if a business rule is violated, and with
// repository.ErrConflict if every attempt lost a version race.
func (s *SchedulingService) ScheduleShow(ctx context.Context, movieID, roomID uuid.UUID, start time.Time) (uuid.UUID, error) {
	room, err := s.rooms.Get(roomID)
	if err != nil {
		return uuid.Nil, err
	}
	movie, err := s.movies.Get(movieID)
	if err != nil {
		return uuid.Nil, err
	}
	show, err := s.schedule(start, movie, room)
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("show scheduled",
		zap.String("show_id", show.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.Time("start", start),
	)
	s.notify(ctx, showEvent(queue.EventShowScheduled, show, s.now()))
	return show.ID, nil
}

// schedule runs the read-version, validate, insert cycle.  A conflict
// restarts the whole cycle because the partition may hold new shows; the
// previous validation result is never reused.
func (s *SchedulingService) schedule(start time.Time, movie model.Movie, room model.Room) (model.Show, error) {
	show := model.Show{ID: uuid.New(), Room: room, Movie: movie, StartTime: start}
	date := show.Date()

	for attempt := 0; ; attempt++ {
		version := s.shows.GetVersion(room.ID, date)

		if violations := s.validators.Validate(movie, room, start); len(violations) > 0 {
			return model.Show{}, &ValidationError{Messages: violations}
		}

		_, err := s.shows.AddShow(show, version)
		if err == nil {
			return show, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return model.Show{}, err
		}
		if attempt >= s.maxRetries {
			s.log.Warn("schedule retries exhausted",
				zap.String("room_id", room.ID.String()),
				zap.String("date", date.String()),
				zap.Int("attempts", attempt+1),
			)
			return model.Show{}, err
		}
		s.log.Debug("version conflict, retrying",
			zap.String("room_id", room.ID.String()),
			zap.String("date", date.String()),
			zap.Int("version", version),
			zap.Int("attempt", attempt+1),
		)
	}
}

// CancelShow removes the show.  It succeeds for unknown ids as well.
func (s *SchedulingService) CancelShow(ctx context.Context, showID uuid.UUID) error {
	show, err := s.shows.GetShow(showID)
	s.shows.RemoveShow(showID)
	if err != nil {
		return nil
	}
	s.log.Info("show cancelled", zap.String("show_id", showID.String()))
	s.notify(ctx, showEvent(queue.EventShowCancelled, show, s.now()))
	return nil
}

// ChangeShow moves and/or reschedules a show.  When newRoomID or newStart
// is nil the current value is kept.  The replacement is scheduled like a
// new show and receives a new id; the original is removed only after the
// replacement was inserted, so a failed change leaves it in place.
func (s *SchedulingService) ChangeShow(ctx context.Context, showID uuid.UUID, newRoomID *uuid.UUID, newStart *time.Time) (uuid.UUID, error) {
	current, err := s.shows.GetShow(showID)
	if err != nil {
		return uuid.Nil, err
	}
	room := current.Room
	if newRoomID != nil {
		if room, err = s.rooms.Get(*newRoomID); err != nil {
			return uuid.Nil, err
		}
	}
	start := current.StartTime
	if newStart != nil {
		start = *newStart
	}

	replacement, err := s.schedule(start, current.Movie, room)
	if err != nil {
		return uuid.Nil, err
	}
	s.shows.RemoveShow(showID)

	s.log.Info("show changed",
		zap.String("show_id", replacement.ID.String()),
		zap.String("replaced_show_id", showID.String()),
		zap.String("room_id", room.ID.String()),
		zap.Time("start", start),
	)
	ev := showEvent(queue.EventShowChanged, replacement, s.now())
	ev.ReplacedShowID = showID.String()
	s.notify(ctx, ev)
	return replacement.ID, nil
}

// RescheduleShow changes only the start time of a show.
func (s *SchedulingService) RescheduleShow(ctx context.Context, showID uuid.UUID, newStart time.Time) (uuid.UUID, error) {
	return s.ChangeShow(ctx, showID, nil, &newStart)
}

// MoveShow changes only the room of a show.
func (s *SchedulingService) MoveShow(ctx context.Context, showID, newRoomID uuid.UUID) (uuid.UUID, error) {
	return s.ChangeShow(ctx, showID, &newRoomID, nil)
}

// GetRoomShows returns the schedule of a room on a date: every show in
// ascending start order, each followed by its cleaning period.
func (s *SchedulingService) GetRoomShows(_ context.Context, roomID uuid.UUID, date model.Date) ([]model.ScheduleItem, error) {
	if _, err := s.rooms.Get(roomID); err != nil {
		return nil, err
	}
	shows := s.shows.GetShows(roomID, date)
	sort.SliceStable(shows, func(i, j int) bool { return shows[i].StartTime.Before(shows[j].StartTime) })

	items := make([]model.ScheduleItem, 0, 2*len(shows))
	for _, show := range shows {
		items = append(items,
			model.ScheduleItem{Kind: model.ItemShow, Show: show, Period: show.Screening()},
			model.ScheduleItem{Kind: model.ItemCleaning, Show: show, Period: show.Cleaning()},
		)
	}
	return items, nil
}

func (s *SchedulingService) notify(ctx context.Context, ev queue.ScheduleEvent) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Warn("schedule event not delivered",
			zap.String("type", ev.Type),
			zap.String("show_id", ev.ShowID),
			zap.Error(err),
		)
	}
}
