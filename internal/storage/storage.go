package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/storage/transaction"
)

// Storage is the process-wide database handle. The backend is chosen once
// in Open and never branched on afterwards.
type Storage struct {
	DB      *sql.DB
	Driver  config.StorageDriver
	exec    bob.DB
	dialect transaction.Dialect
}

// Open connects to the configured backend.
func Open(env *config.Config) (*Storage, error) {
	var (
		db      *sql.DB
		err     error
		dialect transaction.Dialect
	)
	switch env.StorageDriver {
	case config.StorageDriverPostgres:
		db, err = sql.Open("postgres", env.PostgresURL())
		dialect = transaction.Postgres
	case config.StorageDriverSQLite:
		db, err = sql.Open("sqlite", env.SQLiteDSN())
		dialect = transaction.SQLite
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", env.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", env.StorageDriver, err)
	}
	if env.StorageDriver == config.StorageDriverSQLite {
		// One writer at a time; sqlite locks the whole file anyway.
		db.SetMaxOpenConns(1)
	}
	return New(db, env.StorageDriver, dialect), nil
}

// New wraps an already open database.
func New(db *sql.DB, driver config.StorageDriver, dialect transaction.Dialect) *Storage {
	return &Storage{
		DB:      db,
		Driver:  driver,
		exec:    bob.NewDB(db),
		dialect: dialect,
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Read returns a reader that runs outside any transaction.
func (s *Storage) Read() *Reader {
	return NewReader(s.exec, s.dialect)
}

// Write opens a transaction. The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	return NewWriter(tx, s.dialect), nil
}

// WithWriter runs fn inside a transaction, committing on success and
// rolling back on error.
func (s *Storage) WithWriter(ctx context.Context, fn func(*Writer) error) error {
	w, err := s.Write(ctx)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		_ = w.Rollback(ctx)
		return err
	}
	return w.Commit(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
