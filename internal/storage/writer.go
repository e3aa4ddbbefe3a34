package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/sms-ledger/internal/storage/transaction"
)

type Writer struct {
	tx           bob.Tx
	Transactions *transaction.Writer
}

func NewWriter(tx bob.Tx, dialect transaction.Dialect) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: transaction.NewWriter(tx, dialect),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
