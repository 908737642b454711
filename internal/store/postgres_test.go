package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var spaces = regexp.MustCompile(`\s+`)

type pgCall struct {
	sql  string
	args []any
}

// fakePgx keeps the kv table in a map and understands only the statements
// PostgresKV issues.
type fakePgx struct {
	mu    sync.Mutex
	calls []pgCall
	rows  map[string][]byte
	fail  error
}

func (f *fakePgx) record(sql string, args []any) string {
	sql = strings.TrimSpace(spaces.ReplaceAllString(sql, " "))
	f.calls = append(f.calls, pgCall{sql: sql, args: args})
	if f.rows == nil {
		f.rows = make(map[string][]byte)
	}
	return sql
}

func (f *fakePgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sql = f.record(sql, args)
	if f.fail != nil {
		return pgconn.CommandTag{}, f.fail
	}
	switch {
	case strings.HasPrefix(sql, "INSERT INTO kv"):
		f.rows[args[0].(string)] = append([]byte(nil), args[1].([]byte)...)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.HasPrefix(sql, "DELETE FROM kv"):
		delete(f.rows, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakePgx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(sql, args)
	if f.fail != nil {
		return fakeRow{err: f.fail}
	}
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = append([]byte(nil), r.value...)
	return nil
}

func TestPostgresKV_statements(t *testing.T) {
	ctx := context.Background()
	db := &fakePgx{}
	kv := NewPostgresKV(db)

	require.NoError(t, kv.Migrate(ctx))
	require.NoError(t, kv.Set(ctx, "settings", []byte(`{"apiKey":"k"}`)))
	_, err := kv.Get(ctx, "settings")
	require.NoError(t, err)
	require.NoError(t, kv.Delete(ctx, "settings"))

	require.Len(t, db.calls, 4)
	assert.True(t, strings.HasPrefix(db.calls[0].sql, "CREATE TABLE IF NOT EXISTS kv ("))
	assert.Contains(t, db.calls[0].sql, "key VARCHAR(255) PRIMARY KEY")
	assert.Contains(t, db.calls[1].sql, "ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value")
	assert.Equal(t, []any{"settings", []byte(`{"apiKey":"k"}`)}, db.calls[1].args)
	assert.Equal(t, "SELECT value FROM kv WHERE key = $1", db.calls[2].sql)
	assert.Equal(t, []any{"settings"}, db.calls[2].args)
	assert.Equal(t, "DELETE FROM kv WHERE key = $1", db.calls[3].sql)
}

func TestPostgresKV_errors(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")
	kv := NewPostgresKV(&fakePgx{fail: down})

	_, err := kv.Get(ctx, "tasks")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, kv.Set(ctx, "tasks", []byte("[]")), down)
}
