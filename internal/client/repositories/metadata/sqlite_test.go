package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestPutAndLookup(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "auth_token", "tok1"))

	v, ok, err := r.Lookup(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok1", v)
}

func TestLookup_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Lookup(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestLookup_EmptyValueIsAbsent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "auth_token", ""))

	_, ok, err := r.Lookup(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPut_Overwrites(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k", "old"))
	require.NoError(t, r.Put(ctx, "k", "new"))

	v, _, err := r.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestRemove_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "x", "v"))
	require.NoError(t, r.Remove(ctx, "x"))
	require.NoError(t, r.Remove(ctx, "x"))

	_, ok, err := r.Lookup(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyKey_Rejected(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, _, err := r.Lookup(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, r.Put(ctx, "", "v"), ErrEmptyKey)
	assert.ErrorIs(t, r.Remove(ctx, ""), ErrEmptyKey)
}

func TestClosedDB_ErrorsNameKeyNotValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	ctx := context.Background()
	_, _, err := r.Lookup(ctx, "auth_token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"auth_token"`)

	err = r.Put(ctx, "auth_token", "s3cret-token")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cret-token")

	assert.Error(t, r.Remove(ctx, "auth_token"))
}

func TestRepository_InsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(tx).Put(ctx, "k", "v"))
	require.NoError(t, tx.Rollback())

	_, ok, err := NewSQLiteRepository(db).Lookup(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "rolled back write is not visible")
}
