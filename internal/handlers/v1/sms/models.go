package sms

import (
	"time"

	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
)

// Transaction is the API response model for a stored or built record.
type Transaction struct {
	ID          string `json:"id,omitempty" doc:"Transaction UUID, absent when not persisted"`
	Direction   string `json:"direction" enum:"income,expense" doc:"Money in or money out"`
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Date        string `json:"date" format:"date" doc:"Transaction date (YYYY-MM-DD)"`
	Bucket      string `json:"bucket" doc:"YYYY-MM reporting bucket"`
	Source      string `json:"source" doc:"Message sender"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	AccountRef  string `json:"accountRef,omitempty" doc:"Masked account number"`
	Balance     string `json:"balance,omitempty" doc:"Balance reported by the message"`
	Provenance  string `json:"provenance" enum:"rule_based,enriched"`
}

// MessageResult is the outcome of one submitted message.
type MessageResult struct {
	Index   int          `json:"index" doc:"Position in the submitted list"`
	Outcome string       `json:"outcome" doc:"What happened to the message"`
	ID      string       `json:"id,omitempty" doc:"Stored transaction UUID"`
	Record  *Transaction `json:"record,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func NewTransaction(r ledger.Record) Transaction {
	t := Transaction{
		Direction:   string(r.Direction),
		Amount:      r.Amount.String(),
		Date:        r.Date.Format(time.DateOnly),
		Bucket:      ledger.BucketOf(r).String(),
		Source:      r.Source,
		Description: r.Description,
		Category:    r.Category.GetOrZero(),
		AccountRef:  r.AccountRef.GetOrZero(),
		Provenance:  string(r.Provenance),
	}
	if !r.ID.IsNil() {
		t.ID = r.ID.String()
	}
	if b, ok := r.Balance.Get(); ok {
		t.Balance = b.String()
	}
	return t
}

func newMessageResult(index int, out pipeline.Outcome) MessageResult {
	res := MessageResult{Index: index, Outcome: string(out.Kind)}
	if out.Produced() {
		rec := NewTransaction(out.Record)
		res.Record = &rec
		res.ID = rec.ID
	}
	if out.Err != nil {
		res.Error = out.Err.Error()
	}
	return res
}
