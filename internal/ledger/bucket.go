package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const bucketLayout = "2006-01"

// Bucket is a YYYY-MM reporting key.
type Bucket string

// BucketOf derives the bucket from the record's transaction date, never
// from the time the message was received.
func BucketOf(r Record) Bucket {
	return BucketForDate(r.Date)
}

// BucketForDate formats a calendar date as its bucket.
func BucketForDate(date time.Time) Bucket {
	return Bucket(date.Format(bucketLayout))
}

// ParseBucket validates a YYYY-MM string.
func ParseBucket(s string) (Bucket, error) {
	t, err := time.Parse(bucketLayout, s)
	if err != nil {
		return "", fmt.Errorf("ledger: invalid bucket %q: %w", s, err)
	}
	return BucketForDate(t), nil
}

func (b Bucket) String() string {
	return string(b)
}

// Label renders the bucket for display, e.g. "January 2024".
func (b Bucket) Label() string {
	t, err := time.Parse(bucketLayout, string(b))
	if err != nil {
		return string(b)
	}
	return t.Format("January 2006")
}

// Totals are the aggregates for one bucket.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// Net is income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// Index folds records into per-bucket totals. It is the in-process
// counterpart of the storage aggregate queries and uses the same BucketOf.
// Not safe for concurrent use.
type Index struct {
	totals map[Bucket]*Totals
}

func NewIndex() *Index {
	return &Index{totals: make(map[Bucket]*Totals)}
}

// Add folds one record into its bucket.
func (i *Index) Add(r Record) {
	b := BucketOf(r)
	t, ok := i.totals[b]
	if !ok {
		t = &Totals{}
		i.totals[b] = t
	}
	switch r.Direction {
	case DirectionIncome:
		t.Income = t.Income.Add(r.Amount)
	case DirectionExpense:
		t.Expense = t.Expense.Add(r.Amount)
	}
	t.Count++
}

// Buckets lists every bucket seen, newest first.
func (i *Index) Buckets() []Bucket {
	out := make([]Bucket, 0, len(i.totals))
	for b := range i.totals {
		out = append(out, b)
	}
	sort.Slice(out, func(a, c int) bool { return out[a] > out[c] })
	return out
}

// Totals returns the aggregates for b; an unseen bucket has zero totals.
func (i *Index) Totals(b Bucket) Totals {
	if t, ok := i.totals[b]; ok {
		return *t
	}
	return Totals{}
}

// Sum returns the total for one direction in one bucket.
func (i *Index) Sum(d Direction, b Bucket) decimal.Decimal {
	t := i.Totals(b)
	if d == DirectionIncome {
		return t.Income
	}
	return t.Expense
}
