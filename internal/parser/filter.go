package parser

import (
	"strings"
)

// DefaultBankSenders are sender-id fragments used by Indian banks.
var DefaultBankSenders = []string{
	"HDFCBK", "SBIINB", "ICICIB", "AXISBK", "BOIIND", "PNBSMS", "SCBANK",
	"KOTAKB", "INDBNK", "CANBNK", "CENTBK", "UNIONB", "YESBNK",
}

// TransactionKeywords mark a body as talking about money movement.
var TransactionKeywords = []string{
	"credited", "debited", "txn", "transaction", "a/c", "account",
	"balance", "withdrawal", "deposit", "transfer",
}

// Filter decides whether a message is plausibly a financial notification.
// It holds no mutable state and is safe for concurrent use.
type Filter struct {
	senders  []string
	keywords []string
}

// NewFilter builds a filter for the given sender codes. An empty list
// falls back to DefaultBankSenders.
func NewFilter(senders []string) *Filter {
	if len(senders) == 0 {
		senders = DefaultBankSenders
	}
	normalized := make([]string, 0, len(senders))
	for _, s := range senders {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			normalized = append(normalized, s)
		}
	}
	keywords := make([]string, len(TransactionKeywords))
	copy(keywords, TransactionKeywords)
	return &Filter{senders: normalized, keywords: keywords}
}

// Accepts is true for a known bank sender, or for a body that has both a
// transaction keyword and a currency marker.
func (f *Filter) Accepts(sender, body string) bool {
	if f.KnownSender(sender) {
		return true
	}
	return f.hasKeyword(body) && hasCurrencyMarker(body)
}

// KnownSender reports whether sender contains any configured sender code.
func (f *Filter) KnownSender(sender string) bool {
	sender = strings.ToLower(sender)
	for _, code := range f.senders {
		if strings.Contains(sender, code) {
			return true
		}
	}
	return false
}

func (f *Filter) hasKeyword(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
