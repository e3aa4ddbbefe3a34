package sms

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLSource_Next(t *testing.T) {
	input := `{"sender":"VM-HDFCBK","body":"Rs 10 debited","receivedAt":"2024-01-15 10:30:00"}

{"sender":"AD-SBIINB","body":"Rs 20 credited","receivedAt":"2024-02-01T08:00:00Z"}
{"sender":"X","body":"no time"}
`
	src := NewJSONLSource(strings.NewReader(input))
	fixed := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return fixed }

	first, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "VM-HDFCBK", first.Sender)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), first.ReceivedAt)

	second, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rs 20 credited", second.Body)
	assert.True(t, second.ReceivedAt.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)))

	third, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, third.ReceivedAt)

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, src.Close())
}

func TestJSONLSource_BadLine(t *testing.T) {
	src := NewJSONLSource(strings.NewReader("{not json}\n"))
	_, err := src.Next(context.Background())
	assert.ErrorContains(t, err, "line 1")
}

func TestJSONLSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewJSONLSource(strings.NewReader(`{"sender":"a","body":"b"}`))
	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTimestamp(t *testing.T) {
	fallback := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fallback, ParseTimestamp("", fallback))
	assert.Equal(t, fallback, ParseTimestamp("yesterday", fallback))
	assert.Equal(t, time.Date(2024, 3, 9, 23, 59, 1, 0, time.UTC), ParseTimestamp("2024-03-09 23:59:01", fallback))
}
