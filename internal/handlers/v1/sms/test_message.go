package sms

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
	smsmsg "github.com/carson-networks/sms-ledger/internal/sms"
)

type TestMessageBody struct {
	Sender  string `json:"sender" minLength:"1" doc:"Sender id"`
	Message string `json:"message" minLength:"1" doc:"Message body"`
}

type TestMessageInput struct {
	Body TestMessageBody
}

type TestMessageResponseBody struct {
	Success bool          `json:"success"`
	Message MessageResult `json:"message"`
}

type TestMessageOutput struct {
	Body TestMessageResponseBody
}

type messageIngester interface {
	Ingest(ctx context.Context, msg smsmsg.Message) pipeline.Outcome
}

// TestMessageHandler handles POST /v1/sms/test, the real-time single
// message path.
type TestMessageHandler struct {
	IngestService messageIngester
	now           func() time.Time
}

func NewTestMessageHandler(svc messageIngester) *TestMessageHandler {
	return &TestMessageHandler{IngestService: svc, now: time.Now}
}

func (h *TestMessageHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "test-sms",
		Method:      http.MethodPost,
		Path:        "/v1/sms/test",
		Summary:     "Process one SMS",
		Description: "Runs a single message through the pipeline, stores it if a transaction was found and returns the outcome.",
		Tags:        []string{"SMS"},
	}, h.handle)
}

func (h *TestMessageHandler) handle(ctx context.Context, input *TestMessageInput) (*TestMessageOutput, error) {
	out := h.IngestService.Ingest(ctx, smsmsg.Message{
		Sender:     input.Body.Sender,
		Body:       input.Body.Message,
		ReceivedAt: h.now(),
	})

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("outcome", string(out.Kind))
	}

	if out.Kind == pipeline.KindPersistenceFailed {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to store transaction", out.Err)
	}

	return &TestMessageOutput{Body: TestMessageResponseBody{
		Success: true,
		Message: newMessageResult(0, out),
	}}, nil
}
