package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/surlink/internal/client/config"
	"github.com/dmitrijs2005/surlink/internal/client/migrations"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Repositories struct {
	Records records.Store
	DB      *sql.DB
}

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations for the given store driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, dir, err := migrationTarget(driver)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(migrations.Migrations, dir)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(sub)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func migrationTarget(driver string) (dialect, dir string, err error) {
	switch driver {
	case config.StoreSQLite:
		return "sqlite3", migrations.SQLiteDir, nil
	case config.StorePostgres:
		return "postgres", migrations.PostgresDir, nil
	}
	return "", "", fmt.Errorf("unsupported store driver %q", driver)
}

// InitDatabase opens the records store and brings its schema up to date.
// driver is config.StoreSQLite (dsn is a file path) or config.StorePostgres.
func InitDatabase(ctx context.Context, driver, dsn string) (*Repositories, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case config.StoreSQLite:
		db, err = sql.Open("sqlite", dsn)
	case config.StorePostgres:
		db, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s store: %w", driver, err)
	}

	repos := &Repositories{DB: db}
	if driver == config.StorePostgres {
		repos.Records = records.NewPostgresStore(db)
	} else {
		repos.Records = records.NewSQLiteStore(db)
	}
	return repos, nil
}
