// Package queue defines message payloads exchanged over the message broker.
package queue

// ScheduleQueueName is the durable queue schedule events are routed to.
const ScheduleQueueName = "schedule.events"

// Event types carried in ScheduleEvent.Type.
const (
	EventShowScheduled = "show.scheduled"
	EventShowChanged   = "show.changed"
	EventShowCancelled = "show.cancelled"
)

// ScheduleEvent is published after a show was scheduled, changed or
// cancelled. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the scheduler.
// ReplacedShowID is set for show.changed only. Cancelling an unknown show
// publishes nothing.
type ScheduleEvent struct {
	Type           string `json:"type"`
	ShowID         string `json:"show_id"`
	ReplacedShowID string `json:"replaced_show_id,omitempty"`
	RoomID         string `json:"room_id,omitempty"`
	RoomName       string `json:"room_name,omitempty"`
	MovieID        string `json:"movie_id,omitempty"`
	MovieTitle     string `json:"movie_title,omitempty"`
	StartsAt       string `json:"starts_at,omitempty"`
	EndsAt         string `json:"ends_at,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}
