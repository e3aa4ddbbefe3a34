package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

var ErrNotFound = errors.New("transaction: not found")

type Reader struct {
	exec    bob.Executor
	dialect Dialect
}

func NewReader(exec bob.Executor, dialect Dialect) *Reader {
	return &Reader{exec: exec, dialect: dialect}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (ledger.Record, error) {
	row, err := bob.One(ctx, r.exec, r.dialect.selectByID(id), scan.StructMapper[*Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, ErrNotFound
	}
	if err != nil {
		return ledger.Record{}, fmt.Errorf("transaction: find %s: %w", id, err)
	}
	return rowToRecord(row), nil
}

// ListByBucket returns the bucket's records, newest date first. A limit of
// zero means no limit.
func (r *Reader) ListByBucket(ctx context.Context, bucket ledger.Bucket, limit int) ([]ledger.Record, error) {
	rows, err := bob.All(ctx, r.exec, r.dialect.selectByBucket(bucket.String(), limit), scan.StructMapper[*Row]())
	if err != nil {
		return nil, fmt.Errorf("transaction: list %s: %w", bucket, err)
	}
	records := make([]ledger.Record, len(rows))
	for i, row := range rows {
		records[i] = rowToRecord(row)
	}
	return records, nil
}

func (r *Reader) SumByDirectionAndBucket(ctx context.Context, direction ledger.Direction, bucket ledger.Bucket) (decimal.Decimal, error) {
	amounts, err := bob.All(ctx, r.exec, r.dialect.selectSum(string(direction), bucket.String()), scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, fmt.Errorf("transaction: sum %s %s: %w", direction, bucket, err)
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

// ListBuckets returns every bucket that has at least one record, newest
// first.
func (r *Reader) ListBuckets(ctx context.Context) ([]ledger.Bucket, error) {
	raw, err := bob.All(ctx, r.exec, r.dialect.selectBuckets(), scan.SingleColumnMapper[string])
	if err != nil {
		return nil, fmt.Errorf("transaction: list buckets: %w", err)
	}
	buckets := make([]ledger.Bucket, 0, len(raw))
	for _, s := range raw {
		b, err := ledger.ParseBucket(s)
		if err != nil {
			return nil, fmt.Errorf("transaction: stored bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}
