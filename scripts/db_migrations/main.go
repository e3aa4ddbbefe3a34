package main

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	server_config "github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/storage/migrations"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	var db *sql.DB
	switch env.StorageDriver {
	case server_config.StorageDriverSQLite:
		db, err = sql.Open("sqlite", env.SQLiteDSN())
	default:
		db, err = sql.Open("postgres", env.PostgresURL())
	}
	if err != nil {
		logrus.WithError(err).Fatal("sql.Open")
		return
	}
	defer db.Close()

	res, err := migrations.Up(db, env.StorageDriver)
	if err != nil {
		logrus.WithError(err).Fatal("migrations.Up")
		return
	}

	logrus.WithFields(logrus.Fields{
		"storageDriver":        env.StorageDriver,
		"preMigrationVersion":  res.PreMigrationVersion,
		"postMigrationVersion": res.PostMigrationVersion,
	}).Info("Migration status")
}
