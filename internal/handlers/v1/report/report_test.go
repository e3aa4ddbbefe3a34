package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/service"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Months(ctx context.Context) ([]ledger.Bucket, error) {
	args := m.Called(ctx)
	buckets, _ := args.Get(0).([]ledger.Bucket)
	return buckets, args.Error(1)
}

func (m *mockReportService) Summary(ctx context.Context, bucket ledger.Bucket) (service.MonthSummary, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(service.MonthSummary), args.Error(1)
}

func (m *mockReportService) Transactions(ctx context.Context, bucket ledger.Bucket, limit int) ([]ledger.Record, error) {
	args := m.Called(ctx, bucket, limit)
	records, _ := args.Get(0).([]ledger.Record)
	return records, args.Error(1)
}

func newReportTestAPI(t *testing.T, svc reportService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_ListMonths(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Months", mock.Anything).Return([]ledger.Bucket{"2024-11", "2024-01"}, nil)

	resp := newReportTestAPI(t, mockSvc).Get("/v1/months")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Months []Month `json:"months"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []Month{
		{Bucket: "2024-11", Label: "November 2024"},
		{Bucket: "2024-01", Label: "January 2024"},
	}, body.Months)
}

func TestHTTP_ListMonths_ServiceError(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Months", mock.Anything).Return(nil, errors.New("database unavailable"))

	resp := newReportTestAPI(t, mockSvc).Get("/v1/months")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_Summary(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Summary", mock.Anything, ledger.Bucket("2024-01")).Return(service.MonthSummary{
		Bucket:  "2024-01",
		Income:  decimal.RequireFromString("1000"),
		Expense: decimal.RequireFromString("250.5"),
	}, nil)

	resp := newReportTestAPI(t, mockSvc).Get("/v1/months/2024-01/summary")

	require.Equal(t, http.StatusOK, resp.Code)
	var body SummaryBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, SummaryBody{
		Bucket:  "2024-01",
		Label:   "January 2024",
		Income:  "1000.00",
		Expense: "250.50",
		Net:     "749.50",
	}, body)
}

func TestHTTP_Summary_BadBucket(t *testing.T) {
	mockSvc := new(mockReportService)

	// Shape passes the path pattern but month 13 does not parse.
	resp := newReportTestAPI(t, mockSvc).Get("/v1/months/2024-13/summary")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = newReportTestAPI(t, mockSvc).Get("/v1/months/january/summary")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Summary")
}

func TestHTTP_ListTransactions(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	mockSvc := new(mockReportService)
	mockSvc.On("Transactions", mock.Anything, ledger.Bucket("2024-01"), 5).Return([]ledger.Record{{
		ID:          id,
		Direction:   ledger.DirectionExpense,
		Amount:      decimal.RequireFromString("45.50"),
		Date:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Source:      "VM-HDFCBK",
		Description: "Expense transaction",
		Provenance:  ledger.ProvenanceEnriched,
	}}, nil)

	resp := newReportTestAPI(t, mockSvc).Get("/v1/months/2024-01/transactions?limit=5")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body.Body))
	require.Len(t, body.Body.Transactions, 1)
	assert.Equal(t, id.String(), body.Body.Transactions[0].ID)
	assert.Equal(t, "45.5", body.Body.Transactions[0].Amount)
	assert.Equal(t, "enriched", body.Body.Transactions[0].Provenance)
	mockSvc.AssertExpectations(t)
}
