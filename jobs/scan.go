package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/events"
)

// TaskTypeReminderScan is the cron-triggered sweep over upcoming events.
const TaskTypeReminderScan = "event:reminder-scan"

// ScanWindow bounds how far ahead the sweep looks. Events starting later
// than this are picked up by a later sweep.
const ScanWindow = 25 * time.Hour

// ReminderScanJob walks events starting inside the window and enqueues a
// reminder task per due offset. Enqueueing is idempotent via task IDs, so
// the sweep and the write-path enqueue can overlap safely.
type ReminderScanJob struct {
	Pool   *pgxpool.Pool
	Client *Client
	Logger *slog.Logger
	now    func() time.Time
}

// NewReminderScanJob initialises the sweep handler.
func NewReminderScanJob(pool *pgxpool.Pool, client *Client, logger *slog.Logger) *ReminderScanJob {
	return &ReminderScanJob{Pool: pool, Client: client, Logger: logger, now: time.Now}
}

// NewReminderScanTask constructs the cron task; it carries no payload.
func NewReminderScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReminderScan, nil)
}

// Handle implements asynq.HandlerFunc for the sweep.
func (j *ReminderScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	const query = `SELECT id, title, "start", organizer, attendees, reminders
FROM events
WHERE reminders IS NOT NULL AND jsonb_array_length(reminders) > 0`

	rows, err := j.Pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	var scanned, enqueued int
	now := j.now()
	for rows.Next() {
		var (
			event        events.Event
			rawAttendees []byte
			rawReminders []byte
		)
		if err := rows.Scan(&event.ID, &event.Title, &event.Start, &event.Organizer, &rawAttendees, &rawReminders); err != nil {
			return err
		}
		if rawAttendees != nil {
			if err := json.Unmarshal(rawAttendees, &event.Attendees); err != nil {
				j.Logger.Warn("reminder scan: bad attendees", slog.Int64("event_id", event.ID))
				continue
			}
		}
		if err := json.Unmarshal(rawReminders, &event.Reminders); err != nil {
			j.Logger.Warn("reminder scan: bad reminders", slog.Int64("event_id", event.ID))
			continue
		}
		start, err := ParseEventTime(event.Start)
		if err != nil || start.Before(now) || start.After(now.Add(ScanWindow)) {
			continue
		}
		scanned++
		if err := j.Client.EnqueueEventReminders(ctx, event); err != nil {
			j.Logger.Warn("reminder scan: enqueue", slog.Int64("event_id", event.ID), slog.Any("error", err))
			continue
		}
		enqueued++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	j.Logger.Info("reminder scan complete", slog.Int("in_window", scanned), slog.Int("enqueued", enqueued))
	return nil
}
