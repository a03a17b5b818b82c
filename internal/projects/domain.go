package projects

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a work project with budget, timeline and tracking.
// Access is ownership-gated: owner_id is the authorization column.
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Key         *string    `json:"key"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Tags        *string    `json:"tags"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	ClientID    *uuid.UUID `json:"client_id"`
	StartDate   *string    `json:"start_date"`
	EndDate     *string    `json:"end_date"`
	Budget      *int64     `json:"budget"`
	Spent       int64      `json:"spent"`
	Currency    string     `json:"currency"`
	BillingType string     `json:"billing_type"`
	IsArchived  int        `json:"is_archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateProjectRequest carries the fields accepted at creation.
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required"`
	Key         *string    `json:"key"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Tags        *string    `json:"tags"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	ClientID    *uuid.UUID `json:"client_id"`
	StartDate   *string    `json:"start_date"`
	EndDate     *string    `json:"end_date"`
	Budget      *int64     `json:"budget"`
	Currency    *string    `json:"currency"`
	BillingType *string    `json:"billing_type"`
}

// UpdateProjectRequest lists the mutable fields. Anything not named here is
// rejected at decode time rather than silently applied.
type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Key         *string    `json:"key"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Tags        *string    `json:"tags"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	ClientID    *uuid.UUID `json:"client_id"`
	StartDate   *string    `json:"start_date"`
	EndDate     *string    `json:"end_date"`
	Budget      *int64     `json:"budget"`
	Spent       *int64     `json:"spent"`
	Currency    *string    `json:"currency"`
	BillingType *string    `json:"billing_type"`
	IsArchived  *int       `json:"is_archived"`
}
