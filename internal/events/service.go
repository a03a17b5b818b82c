package events

import (
	"context"

	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// ReminderEnqueuer schedules reminder delivery for an event. Implemented by
// the jobs package; nil-safe no-op when the worker is not wired.
type ReminderEnqueuer interface {
	EnqueueEventReminders(ctx context.Context, event Event) error
}

// Service applies the event access policy around the repository. Events are
// a shared calendar: list and read are open to any authenticated principal.
type Service struct {
	repo      Repository
	reminders ReminderEnqueuer
}

// NewService constructs a Service. reminders may be nil.
func NewService(repo Repository, reminders ReminderEnqueuer) *Service {
	return &Service{repo: repo, reminders: reminders}
}

// List returns events without any ownership scoping.
func (s *Service) List(ctx context.Context, _ shared.Principal, skip, limit int) ([]Event, error) {
	return s.repo.List(ctx, skip, limit)
}

// Get loads one event; any authenticated principal may read it.
func (s *Service) Get(ctx context.Context, _ shared.Principal, id int64) (*Event, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts an event, defaulting the creator to the caller.
func (s *Service) Create(ctx context.Context, principal shared.Principal, req CreateEventRequest) (*Event, error) {
	event := Event{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Location:    req.Location,
		Organizer:   req.Organizer,
		Attendees:   req.Attendees,
		Status:      StatusTentative,
		Privacy:     PrivacyPublic,
		Recurrence:  RecurrenceNone,
		Reminders:   req.Reminders,
		Color:       req.Color,
		UserID:      req.UserID,
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Privacy != nil {
		event.Privacy = *req.Privacy
	}
	if req.Recurrence != nil {
		event.Recurrence = *req.Recurrence
	}
	if event.UserID == nil {
		id := principal.ID
		event.UserID = &id
	}
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	s.scheduleReminders(ctx, *created)
	return created, nil
}

// Update mutates an event after the creator-or-privileged check passes.
func (s *Service) Update(ctx context.Context, principal shared.Principal, id int64, req UpdateEventRequest) (*Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(principal, *event) {
		return nil, httpx.ErrForbidden
	}
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if req.Reminders != nil || req.Start != nil {
		s.scheduleReminders(ctx, *updated)
	}
	return updated, nil
}

// Delete removes an event after the creator-or-privileged check passes.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(principal, *event) {
		return httpx.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// scheduleReminders is best-effort: a full reminder queue must never fail
// the calendar write that triggered it.
func (s *Service) scheduleReminders(ctx context.Context, event Event) {
	if s.reminders == nil || len(event.Reminders) == 0 {
		return
	}
	_ = s.reminders.EnqueueEventReminders(ctx, event)
}
