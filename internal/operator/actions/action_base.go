package actions

import (
	"context"

	"github.com/carson-networks/sms-ledger/internal/storage"
)

// IAction is one unit of work run inside a single writer transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
