// Package storagetest opens migrated databases for tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/storage"
	"github.com/carson-networks/sms-ledger/internal/storage/migrations"
	"github.com/carson-networks/sms-ledger/internal/storage/transaction"
)

// NewSQLite returns a migrated sqlite storage in a temp directory.
func NewSQLite(t testing.TB) *storage.Storage {
	t.Helper()

	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "ledger.db")}
	db, err := sql.Open("sqlite", cfg.SQLiteDSN())
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = migrations.Up(db, config.StorageDriverSQLite)
	require.NoError(t, err)

	s := storage.New(db, config.StorageDriverSQLite, transaction.SQLite)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(context.Background()))
	return s
}
