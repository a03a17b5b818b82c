package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/platform/httpx"
)

// update carries resolved column values: request fields plus the password
// digest computed by the service layer.
type update struct {
	Email        *string
	PasswordHash *string
	FullName     *string
	AvatarURL    *string
	Image        *string
	RawRoles     []byte
}

// Repository defines data access for user accounts.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Create(ctx context.Context, user User, passwordHash string) (*User, error)
	Update(ctx context.Context, id uuid.UUID, u update) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = `id, email, full_name, avatar_url, image, COALESCE(email_verified, FALSE), roles, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var (
		u        User
		rawRoles []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Image,
		&u.EmailVerified, &rawRoles, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(rawRoles, &u.Roles); err != nil {
		return nil, fmt.Errorf("users: decode roles: %w", err)
	}
	return &u, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) List(ctx context.Context, skip, limit int) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at LIMIT $1 OFFSET $2", userColumns)
	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *repository) Create(ctx context.Context, user User, passwordHash string) (*User, error) {
	rawRoles, err := json.Marshal(user.Roles)
	if err != nil {
		return nil, fmt.Errorf("users: encode roles: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO users
(id, email, password_hash, full_name, avatar_url, image, roles, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING %s`, userColumns)
	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID, user.Email, passwordHash, user.FullName, user.AvatarURL, user.Image, rawRoles))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, fmt.Errorf("users: create: %w", err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, u update) (*User, error) {
	query := "UPDATE users SET id = id"
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if u.Email != nil {
		set("email", *u.Email)
	}
	if u.PasswordHash != nil {
		set("password_hash", *u.PasswordHash)
	}
	if u.FullName != nil {
		set("full_name", *u.FullName)
	}
	if u.AvatarURL != nil {
		set("avatar_url", *u.AvatarURL)
	}
	if u.Image != nil {
		set("image", *u.Image)
	}
	if u.RawRoles != nil {
		set("roles", u.RawRoles)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), userColumns)

	updated, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
