package sms

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type jsonlLine struct {
	Sender     string `json:"sender"`
	Body       string `json:"body"`
	ReceivedAt string `json:"receivedAt"`
}

// JSONLSource reads one message per line. Blank lines are skipped.
type JSONLSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	now     func() time.Time
}

func NewJSONLSource(r io.Reader) *JSONLSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	src := &JSONLSource{scanner: scanner, now: time.Now}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src
}

// OpenJSONLFile opens path for reading as a backlog source.
func OpenJSONLFile(path string) (*JSONLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sms: open backlog: %w", err)
	}
	return NewJSONLSource(f), nil
}

func (s *JSONLSource) Next(ctx context.Context) (Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Message{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return Message{}, fmt.Errorf("sms: read line %d: %w", s.line+1, err)
			}
			return Message{}, io.EOF
		}
		s.line++

		raw := strings.TrimSpace(s.scanner.Text())
		if raw == "" {
			continue
		}

		var l jsonlLine
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return Message{}, fmt.Errorf("sms: line %d: %w", s.line, err)
		}
		return Message{
			Sender:     l.Sender,
			Body:       l.Body,
			ReceivedAt: ParseTimestamp(l.ReceivedAt, s.now()),
		}, nil
	}
}

func (s *JSONLSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
