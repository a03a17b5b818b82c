package events

import (
	"time"

	"github.com/google/uuid"
)

// Event statuses, privacy levels and recurrence values mirror the calendar
// vocabulary the web client sends.
const (
	StatusTentative = "tentative"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PrivacyPublic       = "public"
	PrivacyPrivate      = "private"
	PrivacyConfidential = "confidential"

	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// Reminder is a structured offset before the event start.
type Reminder struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Event is a calendar entry. Every authenticated user can list and read
// events; only the creator (user_id) or a privileged principal can mutate.
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	AllDay      int        `json:"all_day"`
	Location    *string    `json:"location"`
	Organizer   *string    `json:"organizer"`
	Attendees   []string   `json:"attendees"`
	Status      string     `json:"status"`
	Privacy     string     `json:"privacy"`
	Recurrence  string     `json:"recurrence"`
	Reminders   []Reminder `json:"reminders"`
	Color       *string    `json:"color"`
	UserID      *uuid.UUID `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateEventRequest carries the fields accepted at creation.
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Start       string     `json:"start" validate:"required"`
	End         string     `json:"end" validate:"required"`
	AllDay      *int       `json:"all_day"`
	Location    *string    `json:"location"`
	Organizer   *string    `json:"organizer"`
	Attendees   []string   `json:"attendees"`
	Status      *string    `json:"status"`
	Privacy     *string    `json:"privacy"`
	Recurrence  *string    `json:"recurrence"`
	Reminders   []Reminder `json:"reminders"`
	Color       *string    `json:"color"`
	UserID      *uuid.UUID `json:"user_id"`
}

// UpdateEventRequest lists the mutable fields.
type UpdateEventRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Start       *string     `json:"start"`
	End         *string     `json:"end"`
	AllDay      *int        `json:"all_day"`
	Location    *string     `json:"location"`
	Organizer   *string     `json:"organizer"`
	Attendees   *[]string   `json:"attendees"`
	Status      *string     `json:"status"`
	Privacy     *string     `json:"privacy"`
	Recurrence  *string     `json:"recurrence"`
	Reminders   *[]Reminder `json:"reminders"`
	Color       *string     `json:"color"`
	UserID      *uuid.UUID  `json:"user_id"`
}
