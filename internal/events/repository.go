package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// Repository defines data access for events.
type Repository interface {
	Get(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, skip, limit int) ([]Event, error)
	Create(ctx context.Context, event Event) (*Event, error)
	Update(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const eventColumns = `id, title, description, "start", "end", all_day, location, organizer,
attendees, status, privacy, recurrence, reminders, color, user_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var (
		e                      Event
		rawAttendees, rawRemin []byte
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Start, &e.End, &e.AllDay, &e.Location,
		&e.Organizer, &rawAttendees, &e.Status, &e.Privacy, &e.Recurrence, &rawRemin,
		&e.Color, &e.UserID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if len(rawAttendees) > 0 {
		if err := json.Unmarshal(rawAttendees, &e.Attendees); err != nil {
			return nil, fmt.Errorf("events: decode attendees: %w", err)
		}
	}
	if len(rawRemin) > 0 {
		if err := json.Unmarshal(rawRemin, &e.Reminders); err != nil {
			return nil, fmt.Errorf("events: decode reminders: %w", err)
		}
	}
	return &e, nil
}

func encodeJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *repository) Get(ctx context.Context, id int64) (*Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, skip, limit int) ([]Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY "start" LIMIT $1 OFFSET $2`, eventColumns)
	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *repository) Create(ctx context.Context, event Event) (*Event, error) {
	attendees, err := encodeJSON(event.Attendees)
	if err != nil {
		return nil, err
	}
	reminders, err := encodeJSON(event.Reminders)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`INSERT INTO events
(title, description, "start", "end", all_day, location, organizer, attendees,
 status, privacy, recurrence, reminders, color, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING %s`, eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.Start, event.End, event.AllDay,
		event.Location, event.Organizer, attendees, event.Status, event.Privacy,
		event.Recurrence, reminders, event.Color, event.UserID,
	))
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	query := "UPDATE events SET updated_at = NOW()"
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Start != nil {
		set(`"start"`, *req.Start)
	}
	if req.End != nil {
		set(`"end"`, *req.End)
	}
	if req.AllDay != nil {
		set("all_day", *req.AllDay)
	}
	if req.Location != nil {
		set("location", *req.Location)
	}
	if req.Organizer != nil {
		set("organizer", *req.Organizer)
	}
	if req.Attendees != nil {
		raw, err := encodeJSON(*req.Attendees)
		if err != nil {
			return nil, err
		}
		set("attendees", raw)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}
	if req.Privacy != nil {
		set("privacy", *req.Privacy)
	}
	if req.Recurrence != nil {
		set("recurrence", *req.Recurrence)
	}
	if req.Reminders != nil {
		raw, err := encodeJSON(*req.Reminders)
		if err != nil {
			return nil, err
		}
		set("reminders", raw)
	}
	if req.Color != nil {
		set("color", *req.Color)
	}
	if req.UserID != nil {
		set("user_id", *req.UserID)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), eventColumns)
	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("events: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
