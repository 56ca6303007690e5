package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_Get_Found(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+value\s+FROM\s+records\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("surLinkStats").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"totalScans":1}`)))

	v, err := repo.Get(context.Background(), "surLinkStats")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"totalScans":1}`), v)
}

func TestPostgres_Get_NoRows(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+records`).
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+records`).
		WithArgs("k").
		WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get record[k]: db down")
}

func TestPostgres_Put_Upserts(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+records\s*\(key,\s*value,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*now\(\)\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE`).
		WithArgs("surLinkTheme", []byte("dark")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "surLinkTheme", []byte("dark")))
}

func TestPostgres_Put_DBError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+records`).
		WithArgs("k", []byte("v")).
		WillReturnError(errors.New("boom"))

	err := repo.Put(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put record[k]")
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+records\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("surlinkLoggedUser").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "surlinkLoggedUser"))
}

func TestPostgres_List(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("surlinkFeedback_1", []byte("a")).
		AddRow("surlinkFeedback_2", []byte("b"))
	mock.ExpectQuery(`(?s)^SELECT\s+key,\s*value\s+FROM\s+records\s+WHERE\s+left\(key,\s*length\(\$1\)\)\s*=\s*\$1\s+ORDER\s+BY\s+key$`).
		WithArgs("surlinkFeedback_").
		WillReturnRows(rows)

	m, err := repo.List(context.Background(), "surlinkFeedback_")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"surlinkFeedback_1": []byte("a"),
		"surlinkFeedback_2": []byte("b"),
	}, m)
}

func TestPostgres_List_RowError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("k1", []byte("a")).
		RowError(0, errors.New("bad row"))
	mock.ExpectQuery(`SELECT\s+key,\s*value\s+FROM\s+records`).
		WithArgs("k").
		WillReturnRows(rows)

	_, err := repo.List(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to iterate record rows")
}
