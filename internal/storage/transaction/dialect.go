package transaction

import (
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	pdialect "github.com/stephenafamo/bob/dialect/psql/dialect"
	pim "github.com/stephenafamo/bob/dialect/psql/im"
	psm "github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/sqlite"
	sdialect "github.com/stephenafamo/bob/dialect/sqlite/dialect"
	sim "github.com/stephenafamo/bob/dialect/sqlite/im"
	ssm "github.com/stephenafamo/bob/dialect/sqlite/sm"
)

// Dialect builds the queries for one SQL backend. The sum query may return
// a single pre-summed row or one row per amount; the reader folds either.
type Dialect interface {
	Name() string
	insert(row Row) bob.Query
	selectByID(id uuid.UUID) bob.Query
	selectByBucket(bucket string, limit int) bob.Query
	selectSum(direction, bucket string) bob.Query
	selectBuckets() bob.Query
}

var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
)

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) insert(row Row) bob.Query {
	return psql.Insert(
		pim.Into(TableName, insertColumns...),
		pim.Values(psql.Arg(
			row.ID, row.Direction, row.Amount, row.Date, row.Bucket, row.Source,
			row.Description, row.Category, row.AccountRef, row.Balance,
			row.RawMessage, row.Provenance,
		)),
	)
}

func (postgresDialect) selectByID(id uuid.UUID) bob.Query {
	return psql.Select(
		psm.Columns(selectColumns...),
		psm.From(TableName),
		psm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
}

func (postgresDialect) selectByBucket(bucket string, limit int) bob.Query {
	mods := []bob.Mod[*pdialect.SelectQuery]{
		psm.Columns(selectColumns...),
		psm.From(TableName),
		psm.Where(psql.Quote("bucket").EQ(psql.Arg(bucket))),
		psm.OrderBy("date").Desc(),
		psm.OrderBy("id").Desc(),
	}
	if limit > 0 {
		mods = append(mods, psm.Limit(limit))
	}
	return psql.Select(mods...)
}

func (postgresDialect) selectSum(direction, bucket string) bob.Query {
	return psql.Select(
		psm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		psm.From(TableName),
		psm.Where(psql.Quote("bucket").EQ(psql.Arg(bucket))),
		psm.Where(psql.Quote("direction").EQ(psql.Arg(direction))),
	)
}

func (postgresDialect) selectBuckets() bob.Query {
	return psql.Select(
		psm.Distinct(),
		psm.Columns("bucket"),
		psm.From(TableName),
		psm.OrderBy("bucket").Desc(),
	)
}

// sqlite keeps amounts as text so they round-trip exactly; summing happens
// in decimal on the reader side.
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) insert(row Row) bob.Query {
	return sqlite.Insert(
		sim.Into(TableName, insertColumns...),
		sim.Values(sqlite.Arg(
			row.ID, row.Direction, row.Amount, row.Date, row.Bucket, row.Source,
			row.Description, row.Category, row.AccountRef, row.Balance,
			row.RawMessage, row.Provenance,
		)),
	)
}

func (sqliteDialect) selectByID(id uuid.UUID) bob.Query {
	return sqlite.Select(
		ssm.Columns(selectColumns...),
		ssm.From(TableName),
		ssm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
}

func (sqliteDialect) selectByBucket(bucket string, limit int) bob.Query {
	mods := []bob.Mod[*sdialect.SelectQuery]{
		ssm.Columns(selectColumns...),
		ssm.From(TableName),
		ssm.Where(sqlite.Quote("bucket").EQ(sqlite.Arg(bucket))),
		ssm.OrderBy("date").Desc(),
		ssm.OrderBy("id").Desc(),
	}
	if limit > 0 {
		mods = append(mods, ssm.Limit(limit))
	}
	return sqlite.Select(mods...)
}

func (sqliteDialect) selectSum(direction, bucket string) bob.Query {
	return sqlite.Select(
		ssm.Columns("amount"),
		ssm.From(TableName),
		ssm.Where(sqlite.Quote("bucket").EQ(sqlite.Arg(bucket))),
		ssm.Where(sqlite.Quote("direction").EQ(sqlite.Arg(direction))),
	)
}

func (sqliteDialect) selectBuckets() bob.Query {
	return sqlite.Select(
		ssm.Distinct(),
		ssm.Columns("bucket"),
		ssm.From(TableName),
		ssm.OrderBy("bucket").Desc(),
	)
}
