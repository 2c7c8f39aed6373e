package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/validator"
)

var today = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func ptr[T any](v T) *T { return &v }

var testHours = validator.Hours{
	OpenFrom:     model.ClockTime{Hour: 8},
	OpenTo:       model.ClockTime{Hour: 22},
	PremiereFrom: model.ClockTime{Hour: 18},
	PremiereTo:   model.ClockTime{Hour: 22},
}

type fixture struct {
	movies *repository.MovieRepo
	rooms  *repository.RoomRepo
	shows  *repository.ShowRepo
	events *recordingNotifier
	svc    *SchedulingService
	room   model.Room
	movie  model.Movie
	ctx    context.Context
}

func newFixture(t *testing.T, maxRetries int) *fixture {
	t.Helper()
	f := &fixture{
		movies: repository.NewMovieRepo(),
		rooms:  repository.NewRoomRepo(),
		shows:  repository.NewShowRepo(),
		events: &recordingNotifier{},
		ctx:    context.Background(),
	}
	f.room = model.Room{Name: "Blue", CleaningDuration: 10 * time.Minute}
	f.room.ID = f.rooms.Add(f.room)
	f.movie = model.Movie{Title: "Heat", Duration: 50 * time.Minute}
	f.movie.ID = f.movies.Add(f.movie)
	f.svc = NewSchedulingService(f.movies, f.rooms, f.shows, validator.Default(f.shows, testHours), maxRetries,
		WithNotifier(f.events))
	return f
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []queue.ScheduleEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, ev queue.ScheduleEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

// flakyStore fails the first conflicts AddShow calls with ErrConflict and
// runs beforeAdd ahead of every call.
type flakyStore struct {
	*repository.ShowRepo
	conflicts int
	versions  int
	adds      int
	beforeAdd func(attempt int)
}

func (s *flakyStore) GetVersion(roomID uuid.UUID, date model.Date) int {
	s.versions++
	return s.ShowRepo.GetVersion(roomID, date)
}

func (s *flakyStore) AddShow(show model.Show, expected int) (uuid.UUID, error) {
	s.adds++
	if s.beforeAdd != nil {
		s.beforeAdd(s.adds)
	}
	if s.adds <= s.conflicts {
		return uuid.Nil, repository.ErrConflict
	}
	return s.ShowRepo.AddShow(show, expected)
}

func TestScheduleShow_ScreeningThenCleaning(t *testing.T) {
	f := newFixture(t, 2)

	id, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(8, 0))
	require.NoError(t, err)

	items, err := f.svc.GetRoomShows(f.ctx, f.room.ID, model.DateOf(today))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, model.ItemShow, items[0].Kind)
	assert.Equal(t, id, items[0].Show.ID)
	assert.Equal(t, model.TimeInterval{Start: at(8, 0), End: at(8, 50)}, items[0].Period)
	assert.Equal(t, model.ItemCleaning, items[1].Kind)
	assert.Equal(t, model.TimeInterval{Start: at(8, 50), End: at(9, 0)}, items[1].Period)

	stored, err := f.shows.GetShow(id)
	require.NoError(t, err)
	assert.Equal(t, model.TimeInterval{Start: at(8, 0), End: at(9, 0)}, stored.Occupied())
	assert.Equal(t, []string{queue.EventShowScheduled}, f.events.types())
}

func TestScheduleShow_BackToBackAndOverlap(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(8, 0))
	require.NoError(t, err)
	_, err = f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(9, 0))
	require.NoError(t, err, "show starting when the previous cleaning ends is legal")

	_, err = f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(8, 55))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{validator.MsgOverlap}, verr.Messages)

	assert.Len(t, f.shows.GetShows(f.room.ID, model.DateOf(today)), 2)
	assert.Equal(t, 2, f.shows.GetVersion(f.room.ID, model.DateOf(today)))
}

func TestScheduleShow_FacilityHours(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(21, 11))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validator.MsgFacilityHours}, verr.Messages)

	_, err = f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(21, 0))
	assert.NoError(t, err, "screening ends at closing, cleaning runs past it")
}

func TestScheduleShow_AllViolationsReported(t *testing.T) {
	f := newFixture(t, 2)
	premiere3D := model.Movie{Title: "Avatar", Duration: time.Hour, Requires3D: true, Premiere: true}
	premiere3D.ID = f.movies.Add(premiere3D)

	_, err := f.svc.ScheduleShow(f.ctx, premiere3D.ID, f.room.ID, at(7, 0))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validator.MsgNo3D, validator.MsgFacilityHours, validator.MsgPremiereHours}, verr.Messages)
	assert.Equal(t, 0, f.shows.GetVersion(f.room.ID, model.DateOf(today)))
	assert.Empty(t, f.events.types())
}

func TestScheduleShow_NotFound(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.ScheduleShow(f.ctx, uuid.New(), f.room.ID, at(12, 0))
	assert.ErrorIs(t, err, repository.ErrMovieNotFound)

	_, err = f.svc.ScheduleShow(f.ctx, f.movie.ID, uuid.New(), at(12, 0))
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleShow_RetriesOnConflict(t *testing.T) {
	f := newFixture(t, 2)
	store := &flakyStore{ShowRepo: f.shows, conflicts: 2}
	svc := NewSchedulingService(f.movies, f.rooms, store, validator.Default(store, testHours), 2)

	id, err := svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(20, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, store.versions)
	assert.Equal(t, 3, store.adds)
	_, err = f.shows.GetShow(id)
	assert.NoError(t, err)
}

func TestScheduleShow_RetryExhausted(t *testing.T) {
	f := newFixture(t, 2)
	store := &flakyStore{ShowRepo: f.shows, conflicts: 100}
	svc := NewSchedulingService(f.movies, f.rooms, store, validator.Default(store, testHours), 2)

	_, err := svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(20, 0))

	assert.Equal(t, repository.ErrConflict, err, "conflict is propagated unmodified")
	assert.Equal(t, 3, store.versions)
	assert.Equal(t, 3, store.adds)
	assert.Empty(t, f.shows.GetShows(f.room.ID, model.DateOf(today)))
}

func TestScheduleShow_RevalidatesAfterConflict(t *testing.T) {
	f := newFixture(t, 5)
	store := &flakyStore{ShowRepo: f.shows, conflicts: 1}
	store.beforeAdd = func(attempt int) {
		if attempt == 1 {
			// a concurrent writer takes the slot between our read and our insert
			rival := model.Show{ID: uuid.New(), Room: f.room, Movie: f.movie, StartTime: at(12, 30)}
			_, err := f.shows.AddShow(rival, f.shows.GetVersion(f.room.ID, model.DateOf(today)))
			require.NoError(t, err)
		}
	}
	svc := NewSchedulingService(f.movies, f.rooms, store, validator.Default(store, testHours), 5)

	_, err := svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(12, 0))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validator.MsgOverlap}, verr.Messages)
	assert.Equal(t, 1, store.adds, "validation failure is not retried")
	assert.Len(t, f.shows.GetShows(f.room.ID, model.DateOf(today)), 1)
}

func TestScheduleShow_ConcurrentCallersAllSucceed(t *testing.T) {
	const callers = 12
	f := newFixture(t, callers)

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		start := at(8+i, 0)
		g.Go(func() error {
			_, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, start)
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, f.shows.GetShows(f.room.ID, model.DateOf(today)), callers)
	assert.Equal(t, callers, f.shows.GetVersion(f.room.ID, model.DateOf(today)))

	items, err := f.svc.GetRoomShows(f.ctx, f.room.ID, model.DateOf(today))
	require.NoError(t, err)
	for i := 0; i < callers; i++ {
		assert.Equal(t, at(8+i, 0), items[2*i].Period.Start)
	}
}

func TestScheduleShow_ConcurrentSameSlotOneWins(t *testing.T) {
	const callers = 8
	f := newFixture(t, callers)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(12, 0))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, ErrValidation) {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, fail)
	assert.Len(t, f.shows.GetShows(f.room.ID, model.DateOf(today)), 1)
}

func TestCancelShow(t *testing.T) {
	f := newFixture(t, 2)
	id, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(12, 0))
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelShow(f.ctx, uuid.New()))
	items, err := f.svc.GetRoomShows(f.ctx, f.room.ID, model.DateOf(today))
	require.NoError(t, err)
	assert.Len(t, items, 2, "cancelling an unknown show changes nothing")

	require.NoError(t, f.svc.CancelShow(f.ctx, id))
	require.NoError(t, f.svc.CancelShow(f.ctx, id))
	items, err = f.svc.GetRoomShows(f.ctx, f.room.ID, model.DateOf(today))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, f.shows.GetVersion(f.room.ID, model.DateOf(today)))
	assert.Equal(t, []string{queue.EventShowScheduled, queue.EventShowCancelled}, f.events.types())
}

func TestChangeShow(t *testing.T) {
	tests := []struct {
		name      string
		moveRoom  bool
		newStart  *time.Time
		wantStart time.Time
	}{
		{"time only", false, ptr(at(20, 0)), at(20, 0)},
		{"room only", true, nil, at(18, 0)},
		{"room and time", true, ptr(at(20, 0)), at(20, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 2)
			other := model.Room{Name: "Red", CleaningDuration: 20 * time.Minute}
			other.ID = f.rooms.Add(other)
			oldID, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(18, 0))
			require.NoError(t, err)

			var newRoom *uuid.UUID
			wantRoom := f.room
			if tt.moveRoom {
				newRoom = &other.ID
				wantRoom = other
			}
			newID, err := f.svc.ChangeShow(f.ctx, oldID, newRoom, tt.newStart)
			require.NoError(t, err)

			assert.NotEqual(t, oldID, newID)
			_, err = f.shows.GetShow(oldID)
			assert.ErrorIs(t, err, repository.ErrShowNotFound)
			got, err := f.shows.GetShow(newID)
			require.NoError(t, err)
			assert.Equal(t, wantRoom, got.Room)
			assert.Equal(t, tt.wantStart, got.StartTime)
			assert.Equal(t, f.movie, got.Movie)

			require.Len(t, f.events.events, 2)
			assert.Equal(t, queue.EventShowChanged, f.events.events[1].Type)
			assert.Equal(t, oldID.String(), f.events.events[1].ReplacedShowID)
		})
	}
}

func TestChangeShow_FailureKeepsOriginal(t *testing.T) {
	f := newFixture(t, 2)
	oldID, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(18, 0))
	require.NoError(t, err)
	_, err = f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(20, 0))
	require.NoError(t, err)

	_, err = f.svc.RescheduleShow(f.ctx, oldID, at(19, 30))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.MoveShow(f.ctx, oldID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	got, err := f.shows.GetShow(oldID)
	require.NoError(t, err)
	assert.Equal(t, at(18, 0), got.StartTime)
}

func TestChangeShow_UnknownShow(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.ChangeShow(f.ctx, uuid.New(), nil, ptr(at(12, 0)))

	assert.ErrorIs(t, err, repository.ErrShowNotFound)
}

func TestChangeShow_ToOtherDay(t *testing.T) {
	f := newFixture(t, 2)
	oldID, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(18, 0))
	require.NoError(t, err)

	_, err = f.svc.RescheduleShow(f.ctx, oldID, at(24+12, 0))
	require.NoError(t, err)

	assert.Empty(t, f.shows.GetShows(f.room.ID, model.DateOf(today)))
	assert.Len(t, f.shows.GetShows(f.room.ID, model.DateOf(today.AddDate(0, 0, 1))), 1)
}

func TestGetRoomShows_SortedWithCleaning(t *testing.T) {
	f := newFixture(t, 2)
	for _, h := range []int{20, 9, 14, 11} {
		_, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(h, 0))
		require.NoError(t, err)
	}

	items, err := f.svc.GetRoomShows(f.ctx, f.room.ID, model.DateOf(today))
	require.NoError(t, err)

	require.Len(t, items, 8)
	for i, h := range []int{9, 11, 14, 20} {
		show, cleaning := items[2*i], items[2*i+1]
		assert.Equal(t, model.ItemShow, show.Kind)
		assert.Equal(t, at(h, 0), show.Period.Start)
		assert.Equal(t, model.ItemCleaning, cleaning.Kind)
		assert.Equal(t, show.Period.End, cleaning.Period.Start)
		assert.Equal(t, cleaning.Period.Start.Add(f.room.CleaningDuration), cleaning.Period.End)
	}
}

func TestGetRoomShows_UnknownRoom(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.svc.GetRoomShows(f.ctx, uuid.New(), model.DateOf(today))

	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestNotifierFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t, 2)
	f.events.err = errors.New("broker down")

	id, err := f.svc.ScheduleShow(f.ctx, f.movie.ID, f.room.ID, at(12, 0))
	require.NoError(t, err)
	assert.NoError(t, f.svc.CancelShow(f.ctx, id))
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Messages: []string{"a", "b"}})

	assert.Equal(t, "validation failed: a; b", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
