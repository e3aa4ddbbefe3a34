package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
)

var (
	ErrAmountMissing    = errors.New("ledger: amount missing or not positive")
	ErrDirectionMissing = errors.New("ledger: direction missing")
)

// Draft is everything the builder needs: the direction and fields from
// whichever path succeeded, plus the message envelope.
type Draft struct {
	Direction  Direction
	Fields     Fields
	Provenance Provenance
	Source     string
	RawMessage string
	ReceivedAt time.Time
}

// CategoryUncategorized is the category of a record no rule or enrichment
// could place.
const CategoryUncategorized = "uncategorized"

// DefaultDescription is used when no description could be extracted.
func DefaultDescription(d Direction) string {
	if d == DirectionIncome {
		return "Income transaction"
	}
	return "Expense transaction"
}

// Build assembles a Record from a draft. It fails only when the
// (direction, amount) pair is unusable; every other gap is defaulted.
func Build(d Draft) (Record, error) {
	if !d.Direction.Valid() {
		return Record{}, ErrDirectionMissing
	}
	amount, ok := d.Fields.Amount.Get()
	if !ok || !amount.IsPositive() {
		return Record{}, ErrAmountMissing
	}

	date := d.ReceivedAt
	if v, ok := d.Fields.Date.Get(); ok && !v.IsZero() {
		date = v
	}

	description := strings.TrimSpace(d.Fields.Description.GetOrZero())
	if description == "" {
		description = DefaultDescription(d.Direction)
	}

	category := strings.TrimSpace(d.Fields.Category.GetOrZero())
	if category == "" {
		category = CategoryUncategorized
	}

	provenance := d.Provenance
	if provenance == "" {
		provenance = ProvenanceRuleBased
	}

	return Record{
		Direction:   d.Direction,
		Amount:      amount,
		Date:        CalendarDate(date),
		Source:      d.Source,
		Description: description,
		Category:    null.From(category),
		AccountRef:  d.Fields.AccountRef,
		Balance:     d.Fields.Balance,
		RawMessage:  d.RawMessage,
		Provenance:  provenance,
	}, nil
}
