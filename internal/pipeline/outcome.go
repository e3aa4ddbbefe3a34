package pipeline

import (
	"github.com/carson-networks/sms-ledger/internal/ledger"
)

// Kind classifies what happened to one message.
type Kind string

const (
	KindBuilt             Kind = "built"
	KindPersisted         Kind = "persisted"
	KindFilteredOut       Kind = "filtered_out"
	KindUnclassifiable    Kind = "unclassifiable"
	KindAmountMissing     Kind = "amount_missing"
	KindPersistenceFailed Kind = "persistence_failed"
	KindInvalid           Kind = "invalid"
)

// Outcome is the per-message result returned to whichever driver is
// running the pipeline. Record is set for Built and Persisted. Err is set
// only for PersistenceFailed and Invalid.
type Outcome struct {
	Kind   Kind
	Record ledger.Record
	Err    error

	// DateFromReceivedAt is true when no date could be extracted and the
	// message timestamp was used instead.
	DateFromReceivedAt bool
	// EnrichmentErr is the reason the enrichment path was abandoned, if it
	// was attempted. It never changes Kind.
	EnrichmentErr error
}

// Produced reports whether the outcome carries a record.
func (o Outcome) Produced() bool {
	return o.Kind == KindBuilt || o.Kind == KindPersisted
}

// Dropped reports a silent, non-error drop.
func (o Outcome) Dropped() bool {
	switch o.Kind {
	case KindFilteredOut, KindUnclassifiable, KindAmountMissing:
		return true
	}
	return false
}
