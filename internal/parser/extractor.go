package parser

import (
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

// Extractor pulls fields out of a message body with the declared rule
// tables. The zero value is ready to use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs every field rule. Amount is left null when nothing matches;
// the caller decides whether that is fatal.
func (e *Extractor) Extract(body string, direction ledger.Direction) ledger.Fields {
	fields := ledger.Fields{
		Description: null.From(ExtractDescription(body, direction)),
		Category:    null.From(ExtractCategory(body)),
	}
	if amount, ok := ExtractAmount(body); ok {
		fields.Amount = null.From(amount)
	}
	if date, ok := ExtractDate(body); ok {
		fields.Date = null.From(date)
	}
	if ref, ok := ExtractAccountRef(body); ok {
		fields.AccountRef = null.From(ref)
	}
	if balance, ok := ExtractBalance(body); ok {
		fields.Balance = null.From(balance)
	}
	return fields
}

// ExtractAmount returns the first currency-prefixed positive number. An
// ISO code marker must be separated from its number, so masked accounts
// like "XXX1234" never count.
func ExtractAmount(body string) (decimal.Decimal, bool) {
	for _, m := range amountPattern.FindAllStringSubmatchIndex(body, -1) {
		marker := body[m[2]:m[3]]
		if isCodeMarker(marker) && (m[4] == m[3] || !isCurrencyCode(marker)) {
			continue
		}
		amount, ok := parseNumber(body[m[4]:m[5]])
		if ok && amount.IsPositive() {
			return amount, true
		}
	}
	return decimal.Decimal{}, false
}

// isCodeMarker is true for an upper-case three letter marker other than
// INR, which is always accepted.
func isCodeMarker(marker string) bool {
	if len(marker) != 3 || marker == "INR" {
		return false
	}
	for i := 0; i < len(marker); i++ {
		if marker[i] < 'A' || marker[i] > 'Z' {
			return false
		}
	}
	return true
}

func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ExtractDate returns the date of the first rule whose match parses.
func ExtractDate(body string) (time.Time, bool) {
	for _, rule := range DateRules {
		match := rule.Pattern.FindString(body)
		if match == "" {
			continue
		}
		t, err := time.Parse(rule.Layout, match)
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// ExtractDescription returns the text after the first anchor rule that
// yields something non-empty, or the direction's default text.
func ExtractDescription(body string, direction ledger.Direction) string {
	for _, rule := range DescriptionRules {
		for _, loc := range rule.Anchor.FindAllStringIndex(body, -1) {
			start := loc[1]
			text := strings.TrimSpace(body[start:clauseEnd(body, start)])
			text = strings.TrimRight(text, ",;:- ")
			if text != "" {
				return text
			}
		}
	}
	return ledger.DefaultDescription(direction)
}

// clauseEnd is the index of the next period or anchor at or after start.
func clauseEnd(body string, start int) int {
	end := len(body)
	if i := strings.IndexByte(body[start:], '.'); i >= 0 {
		end = start + i
	}
	rest := body[start:end]
	for _, rule := range DescriptionRules {
		if loc := rule.Anchor.FindStringIndex(rest); loc != nil && start+loc[0] < end {
			end = start + loc[0]
			rest = body[start:end]
		}
	}
	return end
}

// ExtractCategory returns the first matching category, else uncategorized.
func ExtractCategory(body string) string {
	lower := strings.ToLower(body)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return CategoryUncategorized
}

func ExtractAccountRef(body string) (string, bool) {
	m := accountPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

func ExtractBalance(body string) (decimal.Decimal, bool) {
	m := balancePattern.FindStringSubmatch(body)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseNumber(m[1])
}
