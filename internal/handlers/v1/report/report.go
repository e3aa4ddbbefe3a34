package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/sms-ledger/internal/handlers/v1/sms"
	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/service"
)

type reportService interface {
	Months(ctx context.Context) ([]ledger.Bucket, error)
	Summary(ctx context.Context, bucket ledger.Bucket) (service.MonthSummary, error)
	Transactions(ctx context.Context, bucket ledger.Bucket, limit int) ([]ledger.Record, error)
}

// Month is a reporting bucket with its display label.
type Month struct {
	Bucket string `json:"bucket" doc:"YYYY-MM"`
	Label  string `json:"label" doc:"e.g. January 2024"`
}

type ListMonthsOutput struct {
	Body struct {
		Months []Month `json:"months"`
	}
}

type BucketInput struct {
	Bucket string `path:"bucket" pattern:"^[0-9]{4}-[0-9]{2}$" doc:"YYYY-MM bucket"`
}

type SummaryBody struct {
	Bucket  string `json:"bucket"`
	Label   string `json:"label"`
	Income  string `json:"income" doc:"Sum of income amounts"`
	Expense string `json:"expense" doc:"Sum of expense amounts"`
	Net     string `json:"net" doc:"Income minus expense"`
}

type SummaryOutput struct {
	Body SummaryBody
}

type ListTransactionsInput struct {
	BucketInput
	Limit int `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum number of records, default 100"`
}

type ListTransactionsOutput struct {
	Body struct {
		Bucket       string            `json:"bucket"`
		Transactions []sms.Transaction `json:"transactions"`
	}
}

// Handler serves the monthly reporting endpoints.
type Handler struct {
	ReportService reportService
}

func NewHandler(svc reportService) *Handler {
	return &Handler{ReportService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-months",
		Method:      http.MethodGet,
		Path:        "/v1/months",
		Summary:     "List months",
		Description: "Returns every month that has transactions, newest first.",
		Tags:        []string{"Reports"},
	}, h.listMonths)

	huma.Register(api, huma.Operation{
		OperationID: "month-summary",
		Method:      http.MethodGet,
		Path:        "/v1/months/{bucket}/summary",
		Summary:     "Month summary",
		Description: "Returns income, expense and net totals for one month.",
		Tags:        []string{"Reports"},
	}, h.summary)

	huma.Register(api, huma.Operation{
		OperationID: "month-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/months/{bucket}/transactions",
		Summary:     "Month transactions",
		Description: "Returns one month's transactions, newest date first.",
		Tags:        []string{"Reports"},
	}, h.listTransactions)
}

func parseBucket(raw string) (ledger.Bucket, error) {
	b, err := ledger.ParseBucket(raw)
	if err != nil {
		return "", huma.NewError(http.StatusBadRequest, "invalid bucket", err)
	}
	return b, nil
}

func (h *Handler) listMonths(ctx context.Context, _ *struct{}) (*ListMonthsOutput, error) {
	buckets, err := h.ReportService.Months(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list months", err)
	}

	out := &ListMonthsOutput{}
	out.Body.Months = make([]Month, len(buckets))
	for i, b := range buckets {
		out.Body.Months[i] = Month{Bucket: b.String(), Label: b.Label()}
	}
	return out, nil
}

func (h *Handler) summary(ctx context.Context, input *BucketInput) (*SummaryOutput, error) {
	bucket, err := parseBucket(input.Bucket)
	if err != nil {
		return nil, err
	}

	s, err := h.ReportService.Summary(ctx, bucket)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarise month", err)
	}

	return &SummaryOutput{Body: SummaryBody{
		Bucket:  bucket.String(),
		Label:   bucket.Label(),
		Income:  s.Income.StringFixed(2),
		Expense: s.Expense.StringFixed(2),
		Net:     s.Net().StringFixed(2),
	}}, nil
}

func (h *Handler) listTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	bucket, err := parseBucket(input.Bucket)
	if err != nil {
		return nil, err
	}

	records, err := h.ReportService.Transactions(ctx, bucket, input.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
	}
	if logData != nil {
		logData.AddData("transactionCount", len(records))
	}

	out := &ListTransactionsOutput{}
	out.Body.Bucket = bucket.String()
	out.Body.Transactions = make([]sms.Transaction, len(records))
	for i, r := range records {
		out.Body.Transactions[i] = sms.NewTransaction(r)
	}
	return out, nil
}
