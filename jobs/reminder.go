package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEventReminder is the task type for delivering one event
	// reminder to one recipient.
	TaskTypeEventReminder = "event:reminder"
)

// EventReminderPayload identifies the reminder to deliver. Offset records
// how far ahead of the start the reminder was requested, for the message.
type EventReminderPayload struct {
	EventID   int64     `json:"event_id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	Offset    string    `json:"offset"`
	Organizer string    `json:"organizer,omitempty"`
	Attendees []string  `json:"attendees,omitempty"`
}

// NewEventReminderTask constructs the asynq task for a reminder.
func NewEventReminderTask(payload EventReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEventReminder, data), nil
}

// ReminderHandler processes TaskTypeEventReminder tasks. Delivery is a
// structured log line; there is no mail transport behind it yet.
type ReminderHandler struct {
	Logger *slog.Logger
}

// Handle implements asynq.HandlerFunc for event reminders.
func (h *ReminderHandler) Handle(_ context.Context, t *asynq.Task) error {
	var payload EventReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	h.Logger.Info("event reminder due",
		slog.Int64("event_id", payload.EventID),
		slog.String("title", payload.Title),
		slog.Time("start", payload.Start),
		slog.String("offset", payload.Offset),
		slog.Int("attendees", len(payload.Attendees)),
	)
	return nil
}
