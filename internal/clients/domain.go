package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client is a company in the shared directory. Every authenticated
// principal can browse the directory; only privileged principals change it.
type Client struct {
	ID                uuid.UUID `json:"id"`
	CompanyName       string    `json:"company_name"`
	ContactPersonName *string   `json:"contact_person_name"`
	ContactEmail      *string   `json:"contact_email"`
	WebsiteURL        *string   `json:"website_url"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateClientRequest carries the fields accepted at creation.
type CreateClientRequest struct {
	CompanyName       string  `json:"company_name" validate:"required"`
	ContactPersonName *string `json:"contact_person_name"`
	ContactEmail      *string `json:"contact_email" validate:"omitempty,email"`
	WebsiteURL        *string `json:"website_url"`
}

// UpdateClientRequest lists the mutable fields.
type UpdateClientRequest struct {
	CompanyName       *string `json:"company_name"`
	ContactPersonName *string `json:"contact_person_name"`
	ContactEmail      *string `json:"contact_email" validate:"omitempty,email"`
	WebsiteURL        *string `json:"website_url"`
}
