package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/carson-networks/sms-ledger/internal/config"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Result reports the schema version before and after Up.
type Result struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// Up applies every pending migration for driver to db.
func Up(db *sql.DB, driver config.StorageDriver) (Result, error) {
	var (
		instance database.Driver
		err      error
	)
	switch driver {
	case config.StorageDriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case config.StorageDriverSQLite:
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return Result{}, fmt.Errorf("migrations: unknown driver %q", driver)
	}
	if err != nil {
		return Result{}, fmt.Errorf("migrations: %s.WithInstance: %w", driver, err)
	}

	source, err := iofs.New(files, string(driver))
	if err != nil {
		return Result{}, fmt.Errorf("migrations: iofs.New: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(driver), instance)
	if err != nil {
		return Result{}, fmt.Errorf("migrations: migrate.NewWithInstance: %w", err)
	}

	var res Result
	pre, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, fmt.Errorf("migrations: m.Version.preMigrationVersion: %w", err)
	}
	res.PreMigrationVersion = pre

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return res, fmt.Errorf("migrations: m.Up: %w", err)
	}

	post, _, err := m.Version()
	if err != nil {
		return res, fmt.Errorf("migrations: m.Version.postMigrationVersion: %w", err)
	}
	res.PostMigrationVersion = post
	return res, nil
}
