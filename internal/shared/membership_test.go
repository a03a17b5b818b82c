package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captures Exec calls; the read methods are unused by the
// mutating paths under test.
type recordingQuerier struct {
	execs []execCall
}

type execCall struct {
	sql  string
	args []any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not used")
}

func TestReplaceMembersDeletesBeforeInserting(t *testing.T) {
	q := &recordingQuerier{}
	a, b := uuid.New(), uuid.New()

	err := ReplaceMembers(context.Background(), q, TaskAssignees, 7, []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, q.execs, 3)

	assert.Equal(t, "DELETE FROM task_assignees WHERE task_id = $1", q.execs[0].sql)
	assert.Equal(t, []any{int64(7)}, q.execs[0].args)
	assert.Contains(t, q.execs[1].sql, "INSERT INTO task_assignees")
	assert.Contains(t, q.execs[1].sql, "ON CONFLICT DO NOTHING")
	assert.Equal(t, []any{int64(7), a}, q.execs[1].args)
	assert.Equal(t, []any{int64(7), b}, q.execs[2].args)
}

func TestReplaceMembersDeduplicates(t *testing.T) {
	q := &recordingQuerier{}
	a := uuid.New()

	err := ReplaceMembers(context.Background(), q, NoteShares, 3, []uuid.UUID{a, a, a})
	require.NoError(t, err)

	// One delete plus one insert: duplicates collapse.
	require.Len(t, q.execs, 2)
	assert.Equal(t, "DELETE FROM note_shares WHERE note_id = $1", q.execs[0].sql)
	assert.Equal(t, []any{int64(3), a}, q.execs[1].args)
}

func TestReplaceMembersEmptySliceClears(t *testing.T) {
	q := &recordingQuerier{}

	err := ReplaceMembers(context.Background(), q, TaskAssignees, 9, nil)
	require.NoError(t, err)

	require.Len(t, q.execs, 1)
	assert.Equal(t, "DELETE FROM task_assignees WHERE task_id = $1", q.execs[0].sql)
}

func TestClearMembers(t *testing.T) {
	q := &recordingQuerier{}

	err := ClearMembers(context.Background(), q, NoteShares, 12)
	require.NoError(t, err)

	require.Len(t, q.execs, 1)
	assert.Equal(t, "DELETE FROM note_shares WHERE note_id = $1", q.execs[0].sql)
	assert.Equal(t, []any{int64(12)}, q.execs[0].args)
}
