package shared

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MembershipTable describes one composite-keyed junction table: rows are
// (resource id, member id) pairs owned by the resource side.
type MembershipTable struct {
	Table          string
	ResourceColumn string
	MemberColumn   string
}

// Junction tables managed by the relationship manager.
var (
	TaskAssignees = MembershipTable{Table: "task_assignees", ResourceColumn: "task_id", MemberColumn: "user_id"}
	NoteShares    = MembershipTable{Table: "note_shares", ResourceColumn: "note_id", MemberColumn: "user_id"}
)

// Querier is the subset of pgx operations the relationship manager needs.
// Both pgx.Tx and *pgxpool.Pool satisfy it; mutating calls must pass a Tx so
// the junction writes commit or roll back with the resource row itself.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ReplaceMembers overwrites the member set of one resource: every existing
// junction row is removed, then one row per distinct member id is inserted.
// Callers that want "field omitted means leave untouched" semantics must not
// call this at all when the field was omitted.
func ReplaceMembers(ctx context.Context, q Querier, mt MembershipTable, resourceID int64, memberIDs []uuid.UUID) error {
	if err := ClearMembers(ctx, q, mt, resourceID); err != nil {
		return err
	}
	seen := make(map[uuid.UUID]struct{}, len(memberIDs))
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		mt.Table, mt.ResourceColumn, mt.MemberColumn,
	)
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := q.Exec(ctx, insert, resourceID, id); err != nil {
			return fmt.Errorf("shared/membership: insert %s: %w", mt.Table, err)
		}
	}
	return nil
}

// ClearMembers removes every junction row referencing the resource. Delete
// paths must run this before removing the resource row itself so foreign-key
// constraints hold.
func ClearMembers(ctx context.Context, q Querier, mt MembershipTable, resourceID int64) error {
	del := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", mt.Table, mt.ResourceColumn)
	if _, err := q.Exec(ctx, del, resourceID); err != nil {
		return fmt.Errorf("shared/membership: clear %s: %w", mt.Table, err)
	}
	return nil
}

// ListMembers returns the member ids currently attached to the resource.
func ListMembers(ctx context.Context, q Querier, mt MembershipTable, resourceID int64) ([]uuid.UUID, error) {
	sel := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", mt.MemberColumn, mt.Table, mt.ResourceColumn)
	rows, err := q.Query(ctx, sel, resourceID)
	if err != nil {
		return nil, fmt.Errorf("shared/membership: list %s: %w", mt.Table, err)
	}
	defer rows.Close()
	var members []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

// IsMember reports whether the member id is attached to the resource.
func IsMember(ctx context.Context, q Querier, mt MembershipTable, resourceID int64, memberID uuid.UUID) (bool, error) {
	sel := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		mt.Table, mt.ResourceColumn, mt.MemberColumn,
	)
	var exists bool
	if err := q.QueryRow(ctx, sel, resourceID, memberID).Scan(&exists); err != nil {
		return false, fmt.Errorf("shared/membership: exists %s: %w", mt.Table, err)
	}
	return exists, nil
}
