package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging("debug")
	logger.Out = buf
	return logger
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestSetupLogging_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("loud").Level)
}

func TestLogData_Context(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	ld := NewLogData(logrus.New())
	assert.Same(t, ld, GetLogData(WithLogData(context.Background(), ld)))
}

func TestLoggingWrapper_Complete(t *testing.T) {
	var buf bytes.Buffer
	h := LoggingWrapper("Status", bufferedLogger(&buf), func(w http.ResponseWriter, r *http.Request, ld *LogData) error {
		assert.Same(t, ld, GetLogData(r.Context()))
		ld.AddData("checked", true)
		w.WriteHeader(http.StatusOK)
		return nil
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	line := lastLine(t, &buf)
	assert.Equal(t, "Handler.Status.Complete", line["msg"])
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, true, line["checked"])
	assert.Contains(t, line, "duration")
}

func TestLoggingWrapper_Error(t *testing.T) {
	var buf bytes.Buffer
	h := LoggingWrapper("Status", bufferedLogger(&buf), func(w http.ResponseWriter, r *http.Request, ld *LogData) error {
		return errors.New("boom")
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	line := lastLine(t, &buf)
	assert.Equal(t, "Handler.Status.Error", line["msg"])
	assert.Equal(t, "boom", line["error"])
}

type pingOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(bufferedLogger(&buf)))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		ld := GetLogData(ctx)
		require.NotNil(t, ld)
		ld.AddData("pinged", 1)
		out := &pingOutput{}
		out.Body.OK = true
		return out, nil
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusOK, resp.Code)

	line := lastLine(t, &buf)
	assert.Equal(t, "Handler.ping.Complete", line["msg"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, float64(1), line["pinged"])
}
