package records

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/surlink/internal/dbx"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE records (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestPutAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "surLinkTheme", []byte("light")))

	v, err := r.Get(ctx, "surLinkTheme")
	require.NoError(t, err)
	require.Equal(t, []byte("light"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPut_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k", []byte("old")))
	require.NoError(t, r.Put(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestList_FiltersByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "surlinkUser_a@x.io", []byte("a")))
	require.NoError(t, r.Put(ctx, "surlinkUser_b@x.io", []byte("b")))
	require.NoError(t, r.Put(ctx, "surlinkUser", []byte("legacy")))
	require.NoError(t, r.Put(ctx, "surLinkStats", []byte("{}")))

	m, err := r.List(ctx, "surlinkUser_")
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte("a"), m["surlinkUser_a@x.io"])
	assert.Equal(t, []byte("b"), m["surlinkUser_b@x.io"])

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestList_PrefixIsLiteral(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "a_b", []byte("1")))
	require.NoError(t, r.Put(ctx, "axb", []byte("2")))

	m, err := r.List(ctx, "a_")
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Contains(t, m, "a_b")
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "k", []byte("v")))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "k"))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPut_InsideTxRollback(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, NewSQLiteRepository(tx).Put(ctx, "k", []byte("v")))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	v, err := NewSQLiteRepository(db).Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestErrors_WrapDriverFailures(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get record[k]")
	require.ErrorContains(t, r.Put(ctx, "k", nil), "failed to put record[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete record[k]")
	_, err = r.List(ctx, "p")
	require.ErrorContains(t, err, "failed to list records[p*]")
}
