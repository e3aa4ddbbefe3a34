package actions

import (
	"context"

	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/storage"
)

// PersistTransaction inserts one built record. Stored holds the record with
// its assigned id once Perform succeeds.
type PersistTransaction struct {
	Record ledger.Record
	Stored ledger.Record
}

func (p *PersistTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	stored, err := writer.Transactions.Insert(ctx, p.Record)
	if err != nil {
		return err
	}

	p.Stored = stored
	return nil
}
