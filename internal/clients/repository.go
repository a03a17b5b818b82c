package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// Repository defines data access for the client directory.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context, skip, limit int) ([]Client, error)
	Create(ctx context.Context, client Client) (*Client, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const clientColumns = `id, company_name, contact_person_name, contact_email, website_url, created_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.ContactPersonName, &c.ContactEmail,
		&c.WebsiteURL, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE id = $1", clientColumns)
	return scanClient(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, skip, limit int) ([]Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients ORDER BY created_at LIMIT $1 OFFSET $2", clientColumns)
	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *repository) Create(ctx context.Context, client Client) (*Client, error) {
	query := fmt.Sprintf(`INSERT INTO clients
(id, company_name, contact_person_name, contact_email, website_url, created_at)
VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING %s`, clientColumns)
	created, err := scanClient(r.pool.QueryRow(ctx, query,
		client.ID, client.CompanyName, client.ContactPersonName, client.ContactEmail, client.WebsiteURL))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, fmt.Errorf("clients: create: %w", err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*Client, error) {
	query := "UPDATE clients SET id = id"
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if req.CompanyName != nil {
		set("company_name", *req.CompanyName)
	}
	if req.ContactPersonName != nil {
		set("contact_person_name", *req.ContactPersonName)
	}
	if req.ContactEmail != nil {
		set("contact_email", *req.ContactEmail)
	}
	if req.WebsiteURL != nil {
		set("website_url", *req.WebsiteURL)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), clientColumns)

	return scanClient(r.pool.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("clients: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
