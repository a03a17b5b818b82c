package decisions

import "github.com/google/uuid"

// Decision tracks a pending decision with a due date. user_id is the
// authorization column.
type Decision struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	DueDate *string    `json:"due_date"`
	UserID  *uuid.UUID `json:"user_id"`
}

// CreateDecisionRequest carries the fields accepted at creation.
type CreateDecisionRequest struct {
	Name    string     `json:"name" validate:"required"`
	DueDate *string    `json:"due_date"`
	UserID  *uuid.UUID `json:"user_id"`
}

// UpdateDecisionRequest lists the mutable fields.
type UpdateDecisionRequest struct {
	Name    *string    `json:"name"`
	DueDate *string    `json:"due_date"`
	UserID  *uuid.UUID `json:"user_id"`
}
