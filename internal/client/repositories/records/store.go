package records

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/surlink/internal/dbx"
)

// Store is a Repository that can also run a read-modify-write unit of work
// inside a single database transaction.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

type sqlStore struct {
	Repository
	db      *sql.DB
	newRepo func(dbx.DBTX) Repository
}

func NewSQLiteStore(db *sql.DB) Store {
	return &sqlStore{
		Repository: NewSQLiteRepository(db),
		db:         db,
		newRepo:    func(tx dbx.DBTX) Repository { return NewSQLiteRepository(tx) },
	}
}

func NewPostgresStore(db *sql.DB) Store {
	return &sqlStore{
		Repository: NewPostgresRepository(db),
		db:         db,
		newRepo:    func(tx dbx.DBTX) Repository { return NewPostgresRepository(tx) },
	}
}

func (s *sqlStore) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.newRepo(tx))
	})
}
