package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

const dateLayout = "2006-01-02"

// parseContent validates the model's JSON object. transaction_type and a
// positive amount are required; the rest are kept when well formed.
func parseContent(content string) (Result, error) {
	clean := cleanModelJSON(content)

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.UseNumber()
	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return Result{}, fmt.Errorf("%w: trailing data", ErrMalformedResponse)
	}

	kind, err := getStringField(obj, "transaction_type")
	if err != nil {
		return Result{}, err
	}
	var direction ledger.Direction
	switch strings.ToLower(kind) {
	case "credit":
		direction = ledger.DirectionIncome
	case "debit":
		direction = ledger.DirectionExpense
	default:
		return Result{}, fmt.Errorf("%w: transaction_type %q", ErrMissingField, kind)
	}

	amount, err := getDecimalField(obj, "amount")
	if err != nil {
		return Result{}, err
	}
	if !amount.IsPositive() {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	fields := ledger.Fields{Amount: null.From(amount)}
	if s, ok := getOptionalStringField(obj, "description"); ok {
		fields.Description = null.From(s)
	}
	if s, ok := getOptionalStringField(obj, "category"); ok {
		fields.Category = null.From(strings.ToLower(s))
	}
	if s, ok := getOptionalStringField(obj, "account_info"); ok {
		fields.AccountRef = null.From(s)
	}
	if s, ok := getOptionalStringField(obj, "date"); ok {
		if t, err := time.Parse(dateLayout, s); err == nil {
			fields.Date = null.From(t)
		}
	}
	if _, present := obj["balance"]; present {
		if b, err := getDecimalField(obj, "balance"); err == nil {
			fields.Balance = null.From(b)
		}
	}

	return Result{Direction: direction, Fields: fields}, nil
}

func getStringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %q is not a string", ErrMissingField, key)
	}
	return strings.TrimSpace(s), nil
}

func getOptionalStringField(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// getDecimalField accepts a JSON number or a numeric string such as
// "1,250.00".
func getDecimalField(m map[string]interface{}, key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.ReplaceAll(strings.TrimSpace(t), ",", "")
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q has type %T", ErrInvalidAmount, key, v)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, key, err)
	}
	return d, nil
}

// cleanModelJSON drops a Markdown code fence if the model added one anyway.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		idx := strings.IndexByte(s, '\n')
		if idx == -1 {
			return s
		}
		s = s[idx+1:]
		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}
