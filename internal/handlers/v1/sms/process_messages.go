package sms

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/service"
)

// SMSEntry is one message as sent by the device app. Entries missing a
// sender or message are reported as invalid rather than rejected.
type SMSEntry struct {
	Sender    string `json:"sender,omitempty" doc:"Sender id, e.g. VM-HDFCBK"`
	Message   string `json:"message,omitempty" doc:"Message body"`
	Timestamp string `json:"timestamp,omitempty" doc:"yyyy-MM-dd HH:mm:ss or RFC3339; defaults to now"`
}

type ProcessMessagesBody struct {
	Messages []SMSEntry `json:"messages" maxItems:"5000" doc:"Messages to ingest"`
}

type ProcessMessagesInput struct {
	Body ProcessMessagesBody
}

type ProcessMessagesResponseBody struct {
	Success   bool            `json:"success"`
	Processed int             `json:"processed" doc:"Number of messages stored as transactions"`
	Total     int             `json:"total" doc:"Number of messages submitted"`
	Messages  []MessageResult `json:"messages"`
}

type ProcessMessagesOutput struct {
	Body ProcessMessagesResponseBody
}

type batchIngester interface {
	Batch(ctx context.Context, entries []service.BatchEntry) service.BatchResult
}

// ProcessMessagesHandler handles POST /v1/sms/process.
type ProcessMessagesHandler struct {
	IngestService batchIngester
}

func NewProcessMessagesHandler(svc batchIngester) *ProcessMessagesHandler {
	return &ProcessMessagesHandler{IngestService: svc}
}

func (h *ProcessMessagesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "process-sms",
		Method:      http.MethodPost,
		Path:        "/v1/sms/process",
		Summary:     "Process SMS batch",
		Description: "Runs every message through the extraction pipeline and stores the transactions found. Individual failures are reported per message.",
		Tags:        []string{"SMS"},
	}, h.handle)
}

func (h *ProcessMessagesHandler) handle(ctx context.Context, input *ProcessMessagesInput) (*ProcessMessagesOutput, error) {
	logData := logging.GetLogData(ctx)

	entries := make([]service.BatchEntry, len(input.Body.Messages))
	for i, m := range input.Body.Messages {
		entries[i] = service.BatchEntry{Sender: m.Sender, Message: m.Message, Timestamp: m.Timestamp}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("batchMs")
	}
	result := h.IngestService.Batch(ctx, entries)
	if stopTimer != nil {
		stopTimer()
	}

	resp := ProcessMessagesResponseBody{
		Success:   true,
		Processed: result.Processed,
		Total:     result.Total,
		Messages:  make([]MessageResult, len(result.Items)),
	}
	for i, item := range result.Items {
		resp.Messages[i] = newMessageResult(item.Index, item.Outcome)
	}

	if logData != nil {
		logData.AddData("total", result.Total)
		logData.AddData("processed", result.Processed)
	}

	return &ProcessMessagesOutput{Body: resp}, nil
}
