package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lanternhq/lantern/internal/events"
)

// Client submits jobs to the queue. It satisfies events.ReminderEnqueuer.
type Client struct {
	client *asynq.Client
	now    func() time.Time
}

// NewClient constructs an asynq-backed Client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts), now: time.Now}
}

// EnqueueEventReminders schedules one reminder task per requested offset.
// Offsets that already fell in the past are skipped, not delivered late.
func (c *Client) EnqueueEventReminders(ctx context.Context, event events.Event) error {
	start, err := ParseEventTime(event.Start)
	if err != nil {
		return fmt.Errorf("jobs: event %d start: %w", event.ID, err)
	}
	organizer := ""
	if event.Organizer != nil {
		organizer = *event.Organizer
	}
	for _, reminder := range event.Reminders {
		offset := ReminderOffset(reminder)
		due := start.Add(-offset)
		if due.Before(c.now()) {
			continue
		}
		task, err := NewEventReminderTask(EventReminderPayload{
			EventID:   event.ID,
			Title:     event.Title,
			Start:     start,
			Offset:    offset.String(),
			Organizer: organizer,
			Attendees: event.Attendees,
		})
		if err != nil {
			return err
		}
		_, err = c.client.EnqueueContext(ctx, task,
			asynq.Queue(QueueDefault),
			asynq.ProcessAt(due),
			asynq.TaskID(fmt.Sprintf("event:%d:reminder:%s", event.ID, offset)),
		)
		if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			return err
		}
	}
	return nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReminderOffset converts the structured offset into a duration.
func ReminderOffset(r events.Reminder) time.Duration {
	return time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute
}

// ParseEventTime accepts the timestamp shapes the calendar client sends.
func ParseEventTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
