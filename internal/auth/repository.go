package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// Repository defines the account access the auth flows need.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user User) (*User, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, email, COALESCE(password_hash, ''), full_name, roles, created_at
FROM users WHERE email = $1`
	var (
		user     User
		rawRoles []byte
	)
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &rawRoles, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find by email: %w", err)
	}
	if err := json.Unmarshal(rawRoles, &user.Roles); err != nil {
		return nil, fmt.Errorf("auth: decode roles: %w", err)
	}
	return &user, nil
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	rawRoles, err := json.Marshal(user.Roles)
	if err != nil {
		return nil, fmt.Errorf("auth: encode roles: %w", err)
	}
	const query = `INSERT INTO users (id, email, password_hash, full_name, roles, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id, email, password_hash, full_name, roles, created_at`
	var rawOut []byte
	created := User{}
	err = r.pool.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash, user.FullName, rawRoles).Scan(
		&created.ID, &created.Email, &created.PasswordHash, &created.FullName, &rawOut, &created.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, fmt.Errorf("auth: create user: %w", err)
	}
	if err := json.Unmarshal(rawOut, &created.Roles); err != nil {
		return nil, fmt.Errorf("auth: decode roles: %w", err)
	}
	return &created, nil
}
