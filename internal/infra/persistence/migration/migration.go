// Package migration applies the SQL files under migrations/ with golang-migrate.
package migration

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// source
	"github.com/pkg/errors"
)

// DefaultDir is the migrations directory relative to the repository root.
const DefaultDir = "migrations"

// Up applies every pending migration in dir. An up-to-date schema is not an error.
func Up(db *sql.DB, dir string, logger *slog.Logger) error {
	m, err := newMigrate(db, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	logVersion(m, logger)

	return nil
}

// Down rolls back steps migrations.
func Down(db *sql.DB, dir string, steps int, logger *slog.Logger) error {
	m, err := newMigrate(db, dir)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not roll back migrations")
	}

	logVersion(m, logger)

	return nil
}

func newMigrate(db *sql.DB, dir string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "could not create migrate instance")
	}

	return m, nil
}

func logVersion(m *migrate.Migrate, logger *slog.Logger) {
	if logger == nil {
		return
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Warn("Could not read schema version", slog.Any("error", err))

		return
	}

	logger.Info("Schema migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}

// Version reports the applied schema version. A fresh database reports 0.
func Version(db *sql.DB, dir string) (version uint, dirty bool, err error) {
	m, err := newMigrate(db, dir)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "could not read schema version")
	}

	return version, dirty, nil
}
