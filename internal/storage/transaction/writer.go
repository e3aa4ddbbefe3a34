package transaction

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx, dialect Dialect) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec:    tx,
			dialect: dialect,
		},
	}
}

// Insert stores record under a new time-ordered id and returns the record
// as stored. The bucket column is derived here so every ingestion path
// buckets the same way.
func (w *Writer) Insert(ctx context.Context, record ledger.Record) (ledger.Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return ledger.Record{}, fmt.Errorf("transaction: new id: %w", err)
	}
	if _, err := bob.Exec(ctx, w.tx, w.dialect.insert(recordToRow(id, record))); err != nil {
		return ledger.Record{}, fmt.Errorf("transaction: insert: %w", err)
	}
	return record.WithID(id), nil
}
