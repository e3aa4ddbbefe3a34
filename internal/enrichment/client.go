package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

var (
	ErrUnexpectedStatus  = errors.New("enrichment: unexpected status")
	ErrMalformedResponse = errors.New("enrichment: malformed response")
	ErrMissingField      = errors.New("enrichment: missing required field")
	ErrInvalidAmount     = errors.New("enrichment: invalid amount")
)

const (
	DefaultURL     = "https://api.deepseek.com/v1/chat/completions"
	DefaultModel   = "deepseek-chat"
	DefaultTimeout = 10 * time.Second

	temperature = 0.3
	maxTokens   = 1000

	// Cap on how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Result is the validated output of one enrichment call.
type Result struct {
	Direction ledger.Direction
	Fields    ledger.Fields
}

// Config holds the connection settings. An empty APIKey means the client
// must not be constructed at all.
type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls a chat-completion service and validates its answer. Every
// call is bounded by Timeout and is never retried.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
	timeout    time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enrich sends body to the service and returns the validated fields. Any
// error means the caller should use the deterministic path instead.
func (c *Client) Enrich(ctx context.Context, body string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(body)},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return Result{}, fmt.Errorf("enrichment: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("enrichment: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("enrichment: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("enrichment: read response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(chat.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	return parseContent(chat.Choices[0].Message.Content)
}
