package service

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
)

// Notifier receives an event after every successful schedule, change or
// cancel.  A failing notifier never changes the outcome of the operation.
type Notifier interface {
	Notify(ctx context.Context, ev queue.ScheduleEvent) error
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, queue.ScheduleEvent) error { return nil }

func showEvent(typ string, show model.Show, now time.Time) queue.ScheduleEvent {
	screening := show.Screening()
	return queue.ScheduleEvent{
		Type:       typ,
		ShowID:     show.ID.String(),
		RoomID:     show.Room.ID.String(),
		RoomName:   show.Room.Name,
		MovieID:    show.Movie.ID.String(),
		MovieTitle: show.Movie.Title,
		StartsAt:   screening.Start.Format(time.RFC3339),
		EndsAt:     screening.End.Format(time.RFC3339),
		OccurredAt: now.UTC().Format(time.RFC3339),
	}
}
