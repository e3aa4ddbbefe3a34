package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

const DefaultMonthLimit = 100

// TransactionReader is the read side of the storage collaborator.
//
//go:generate mockery --name TransactionReader --output mock_TransactionReader.go
type TransactionReader interface {
	ListBuckets(ctx context.Context) ([]ledger.Bucket, error)
	SumByDirectionAndBucket(ctx context.Context, direction ledger.Direction, bucket ledger.Bucket) (decimal.Decimal, error)
	ListByBucket(ctx context.Context, bucket ledger.Bucket, limit int) ([]ledger.Record, error)
}

// MonthSummary is the income/expense split for one bucket.
type MonthSummary struct {
	Bucket  ledger.Bucket
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (m MonthSummary) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

type ReportService struct {
	reader TransactionReader
}

func NewReportService(reader TransactionReader) *ReportService {
	return &ReportService{reader: reader}
}

// Months lists buckets that have records, newest first.
func (s *ReportService) Months(ctx context.Context) ([]ledger.Bucket, error) {
	return s.reader.ListBuckets(ctx)
}

func (s *ReportService) Summary(ctx context.Context, bucket ledger.Bucket) (MonthSummary, error) {
	income, err := s.reader.SumByDirectionAndBucket(ctx, ledger.DirectionIncome, bucket)
	if err != nil {
		return MonthSummary{}, err
	}
	expense, err := s.reader.SumByDirectionAndBucket(ctx, ledger.DirectionExpense, bucket)
	if err != nil {
		return MonthSummary{}, err
	}
	return MonthSummary{Bucket: bucket, Income: income, Expense: expense}, nil
}

// Transactions lists a bucket's records, newest first. A non-positive
// limit uses DefaultMonthLimit.
func (s *ReportService) Transactions(ctx context.Context, bucket ledger.Bucket, limit int) ([]ledger.Record, error) {
	if limit <= 0 {
		limit = DefaultMonthLimit
	}
	return s.reader.ListByBucket(ctx, bucket, limit)
}
