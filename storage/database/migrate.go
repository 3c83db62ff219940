package database

import (
	"context"
	"io/fs"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	appfs "github.com/trezcool/campus/fs"
)

// MigrationStatus is the state of one embedded migration in the database.
type MigrationStatus struct {
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Migrate applies the pending embedded migrations of the db's engine and returns their file names.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	fsys, err := engineMigrations(db)
	if err != nil {
		return nil, err
	}
	return migrate(ctx, db, fsys)
}

// Status lists the embedded migrations of the db's engine, oldest first.
func Status(ctx context.Context, db *sqlx.DB) ([]MigrationStatus, error) {
	fsys, err := engineMigrations(db)
	if err != nil {
		return nil, err
	}
	return status(ctx, db, fsys)
}

func migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	provider, err := newProvider(db, fsys)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "migrating database")
	}

	applied := make([]string, 0, len(results))
	for _, res := range results {
		applied = append(applied, path.Base(res.Source.Path))
	}
	return applied, nil
}

func status(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]MigrationStatus, error) {
	provider, err := newProvider(db, fsys)
	if err != nil {
		return nil, err
	}
	states, err := provider.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading migration status")
	}

	res := make([]MigrationStatus, 0, len(states))
	for _, st := range states {
		res = append(res, MigrationStatus{
			Name:      path.Base(st.Source.Path),
			Applied:   st.State == goose.StateApplied,
			AppliedAt: st.AppliedAt,
		})
	}
	return res, nil
}

// newProvider returns a goose provider running the migrations found at the root of fsys.
func newProvider(db *sqlx.DB, fsys fs.FS) (*goose.Provider, error) {
	dialect := goose.DialectPostgres
	if engineOf(db) == EngineSQLite {
		dialect = goose.DialectSQLite3
	}
	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "loading migrations")
	}
	return provider, nil
}

// engineMigrations returns the embedded migrations directory of the db's engine.
func engineMigrations(db *sqlx.DB) (fs.FS, error) {
	fsys, err := fs.Sub(appfs.FS, path.Join("migrations", engineOf(db)))
	if err != nil {
		return nil, errors.Wrap(err, "opening migrations")
	}
	return fsys, nil
}

func engineOf(db *sqlx.DB) string {
	if db.DriverName() == EngineSQLite {
		return EngineSQLite
	}
	return EnginePostgres
}
