package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func makeRecord(direction Direction, amount string, date time.Time, provenance Provenance) Record {
	return Record{
		Direction:  direction,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
		Provenance: provenance,
	}
}

func TestBucketOf_UsesTransactionDate(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	ruleBased := makeRecord(DirectionIncome, "10", date, ProvenanceRuleBased)
	enriched := makeRecord(DirectionIncome, "10", date, ProvenanceEnriched)

	assert.Equal(t, Bucket("2024-01"), BucketOf(ruleBased))
	assert.Equal(t, BucketOf(ruleBased), BucketOf(enriched))
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("2024-11")
	assert.NoError(t, err)
	assert.Equal(t, Bucket("2024-11"), b)
	assert.Equal(t, "November 2024", b.Label())

	_, err = ParseBucket("2024-13")
	assert.Error(t, err)

	_, err = ParseBucket("Nov 2024")
	assert.Error(t, err)
}

func TestIndex_FoldsByBucket(t *testing.T) {
	idx := NewIndex()
	idx.Add(makeRecord(DirectionIncome, "1000.00", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ProvenanceRuleBased))
	idx.Add(makeRecord(DirectionExpense, "250.50", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), ProvenanceEnriched))
	idx.Add(makeRecord(DirectionExpense, "99.50", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), ProvenanceRuleBased))
	idx.Add(makeRecord(DirectionExpense, "10", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), ProvenanceRuleBased))
	idx.Add(makeRecord(DirectionIncome, "5", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ProvenanceRuleBased))

	assert.Equal(t, []Bucket{"2024-03", "2024-01", "2023-12"}, idx.Buckets())

	jan := idx.Totals("2024-01")
	assert.Equal(t, 3, jan.Count)
	assert.True(t, jan.Income.Equal(decimal.RequireFromString("1000")))
	assert.True(t, jan.Expense.Equal(decimal.RequireFromString("350")))
	assert.True(t, jan.Net().Equal(decimal.RequireFromString("650")))
	assert.True(t, idx.Sum(DirectionExpense, "2023-12").Equal(decimal.NewFromInt(10)))

	assert.Equal(t, Totals{}, idx.Totals("1999-01"))
}
