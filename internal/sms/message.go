package sms

import (
	"context"
	"time"
)

// Message is one raw notification as received from the device or a
// backlog export. It is read-only to everything downstream.
type Message struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Source yields backlog messages in arrival order. Next returns io.EOF
// once the backlog is exhausted.
type Source interface {
	Next(ctx context.Context) (Message, error)
	Close() error
}

// AndroidTimestampLayout is the format the device app sends timestamps in.
const AndroidTimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp accepts the device layout or RFC3339. An empty or
// unrecognised value yields fallback.
func ParseTimestamp(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	if t, err := time.ParseInLocation(AndroidTimestampLayout, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return fallback
}
