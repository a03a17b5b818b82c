package notes

import (
	"time"

	"github.com/google/uuid"
)

// Note is a personal record, optionally pinned to a task. The owner is the
// only non-privileged principal who can read or change it; SharedWith is a
// distribution list kept in the note_shares junction table.
type Note struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Content    *string     `json:"content"`
	Type       *string     `json:"type"`
	Tags       *string     `json:"tags"`
	CoverImage *string     `json:"cover_image"`
	IsPinned   int         `json:"is_pinned"`
	IsArchived int         `json:"is_archived"`
	IsFavorite int         `json:"is_favorite"`
	UserID     uuid.UUID   `json:"user_id"`
	TaskID     *int64      `json:"task_id"`
	SharedWith []uuid.UUID `json:"shared_with"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// CreateNoteRequest carries the fields accepted at creation. The owner is
// always the calling principal.
type CreateNoteRequest struct {
	Title      string      `json:"title" validate:"required"`
	Content    *string     `json:"content"`
	Type       *string     `json:"type"`
	Tags       *string     `json:"tags"`
	CoverImage *string     `json:"cover_image"`
	IsPinned   *int        `json:"is_pinned"`
	IsArchived *int        `json:"is_archived"`
	IsFavorite *int        `json:"is_favorite"`
	TaskID     *int64      `json:"task_id"`
	SharedWith []uuid.UUID `json:"shared_with"`
}

// UpdateNoteRequest lists the mutable fields. A nil SharedWith pointer leaves
// the share list untouched; an explicit empty slice clears it.
type UpdateNoteRequest struct {
	Title      *string      `json:"title"`
	Content    *string      `json:"content"`
	Type       *string      `json:"type"`
	Tags       *string      `json:"tags"`
	CoverImage *string      `json:"cover_image"`
	IsPinned   *int         `json:"is_pinned"`
	IsArchived *int         `json:"is_archived"`
	IsFavorite *int         `json:"is_favorite"`
	TaskID     *int64       `json:"task_id"`
	SharedWith *[]uuid.UUID `json:"shared_with"`
}
