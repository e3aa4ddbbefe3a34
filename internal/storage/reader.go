package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/sms-ledger/internal/storage/transaction"
)

type Reader struct {
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor, dialect transaction.Dialect) *Reader {
	return &Reader{
		Transactions: transaction.NewReader(exec, dialect),
	}
}
