package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
	"github.com/lanternhq/lantern/internal/shared"
)

// ListFilter scopes note listing. Owner nil means unscoped (privileged).
type ListFilter struct {
	Owner  *uuid.UUID
	TaskID *int64
	Skip   int
	Limit  int
}

// Repository defines data access for notes and their share junction rows.
type Repository interface {
	Get(ctx context.Context, id int64) (*Note, error)
	List(ctx context.Context, filter ListFilter) ([]Note, error)
	Create(ctx context.Context, note Note, sharedWith []uuid.UUID) (*Note, error)
	Update(ctx context.Context, id int64, req UpdateNoteRequest, sharedWith *[]uuid.UUID) (*Note, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const noteColumns = `id, title, content, type, tags, is_pinned, is_archived, is_favorite,
cover_image, user_id, task_id, created_at, updated_at`

func scanNote(row pgx.Row) (*Note, error) {
	var n Note
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Type, &n.Tags, &n.IsPinned, &n.IsArchived,
		&n.IsFavorite, &n.CoverImage, &n.UserID, &n.TaskID, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE id = $1", noteColumns)
	note, err := scanNote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	note.SharedWith, err = shared.ListMembers(ctx, r.pool, shared.NoteShares, note.ID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes", noteColumns)
	var (
		clauses []string
		args    []any
	)
	if filter.Owner != nil {
		args = append(args, *filter.Owner)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.TaskID != nil {
		args = append(args, *filter.TaskID)
		clauses = append(clauses, fmt.Sprintf("task_id = $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].SharedWith, err = shared.ListMembers(ctx, r.pool, shared.NoteShares, notes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func (r *repository) Create(ctx context.Context, note Note, sharedWith []uuid.UUID) (*Note, error) {
	var created *Note
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`INSERT INTO notes
(title, content, type, tags, is_pinned, is_archived, is_favorite, cover_image, user_id, task_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING %s`, noteColumns)
		var err error
		created, err = scanNote(tx.QueryRow(ctx, query,
			note.Title, note.Content, note.Type, note.Tags, note.IsPinned, note.IsArchived,
			note.IsFavorite, note.CoverImage, note.UserID, note.TaskID))
		if err != nil {
			return err
		}
		if len(sharedWith) > 0 {
			if err := shared.ReplaceMembers(ctx, tx, shared.NoteShares, created.ID, sharedWith); err != nil {
				return err
			}
		}
		created.SharedWith, err = shared.ListMembers(ctx, tx, shared.NoteShares, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateNoteRequest, sharedWith *[]uuid.UUID) (*Note, error) {
	var updated *Note
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := "UPDATE notes SET updated_at = NOW()"
		var args []any
		set := func(column string, value any) {
			args = append(args, value)
			query += fmt.Sprintf(", %s = $%d", column, len(args))
		}
		if req.Title != nil {
			set("title", *req.Title)
		}
		if req.Content != nil {
			set("content", *req.Content)
		}
		if req.Type != nil {
			set("type", *req.Type)
		}
		if req.Tags != nil {
			set("tags", *req.Tags)
		}
		if req.CoverImage != nil {
			set("cover_image", *req.CoverImage)
		}
		if req.IsPinned != nil {
			set("is_pinned", *req.IsPinned)
		}
		if req.IsArchived != nil {
			set("is_archived", *req.IsArchived)
		}
		if req.IsFavorite != nil {
			set("is_favorite", *req.IsFavorite)
		}
		if req.TaskID != nil {
			set("task_id", *req.TaskID)
		}
		args = append(args, id)
		query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), noteColumns)

		var err error
		updated, err = scanNote(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}
		if sharedWith != nil {
			if err := shared.ReplaceMembers(ctx, tx, shared.NoteShares, id, *sharedWith); err != nil {
				return err
			}
		}
		updated.SharedWith, err = shared.ListMembers(ctx, tx, shared.NoteShares, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the share rows first, then the note row; the junction table
// holds a foreign key into notes.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := shared.ClearMembers(ctx, tx, shared.NoteShares, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "DELETE FROM notes WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("notes: delete: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
}
