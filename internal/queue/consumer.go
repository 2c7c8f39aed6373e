// Package queue contains the background consumer that listens to the
// schedule.events queue and writes one line per event to logs/schedule.log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StartScheduleConsumer connects to RabbitMQ, declares the schedule.events
// queue (durable), and starts consuming messages. Each message is appended
// to logs/schedule.log in a single-line, human-friendly format. The
// function runs a reconnect loop and only returns when ctx is cancelled;
// processing errors are logged and the offending message is rejected so
// the server continues operating.
func StartScheduleConsumer(ctx context.Context, url string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("schedule-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("schedule-consumer: consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("schedule-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(ScheduleQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ScheduleQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(d.Body); err != nil {
				log.Warn("schedule-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(body []byte) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "schedule.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return writeEvent(f, body)
}

// writeEvent decodes one message body and appends its log line to w.
func writeEvent(w io.Writer, body []byte) error {
	var ev ScheduleEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.ShowID == "" {
		return errors.New("event without type or show_id")
	}
	line := fmt.Sprintf("[%s] %s | show_id=%s", ev.OccurredAt, ev.Type, ev.ShowID)
	if ev.ReplacedShowID != "" {
		line += " | replaced_show_id=" + ev.ReplacedShowID
	}
	if ev.RoomID != "" {
		line += fmt.Sprintf(" | room=%q | movie=%q | starts_at=%s | ends_at=%s", ev.RoomName, ev.MovieTitle, ev.StartsAt, ev.EndsAt)
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
