package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Direction is whether money came in or went out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is one of the two storable directions.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// ParseDirection accepts the stored names as well as the credit/debit
// vocabulary used by bank messages.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit":
		return DirectionIncome, nil
	case "expense", "debit":
		return DirectionExpense, nil
	}
	return "", fmt.Errorf("ledger: unknown direction %q", s)
}

// Provenance records which extraction path produced a record.
type Provenance string

const (
	ProvenanceRuleBased Provenance = "rule_based"
	ProvenanceEnriched  Provenance = "enriched"
)

// Fields is the result of one extraction attempt. Everything is optional
// here; Build decides whether enough was found.
type Fields struct {
	Amount      null.Val[decimal.Decimal]
	Date        null.Val[time.Time]
	Description null.Val[string]
	Category    null.Val[string]
	AccountRef  null.Val[string]
	Balance     null.Val[decimal.Decimal]
}

// Record is a canonical transaction. Records are never mutated once built;
// ID is zero until storage assigns one.
type Record struct {
	ID          uuid.UUID
	Direction   Direction
	Amount      decimal.Decimal
	Date        time.Time
	Source      string
	Description string
	Category    null.Val[string]
	AccountRef  null.Val[string]
	Balance     null.Val[decimal.Decimal]
	RawMessage  string
	Provenance  Provenance
}

// WithID returns a copy of r carrying the storage-assigned id.
func (r Record) WithID(id uuid.UUID) Record {
	r.ID = id
	return r
}

// CalendarDate truncates t to its calendar day, expressed in UTC so that
// the day never shifts when the value crosses a storage boundary.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
