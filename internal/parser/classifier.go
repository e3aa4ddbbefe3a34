package parser

import (
	"strings"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

// DirectionRule maps any of its keywords to a direction.
type DirectionRule struct {
	Keywords  []string
	Direction ledger.Direction
}

// DirectionRules are evaluated in order and the first hit wins, so a body
// that mentions both "credited" and "debited" is income.
var DirectionRules = []DirectionRule{
	{Keywords: []string{"credited", "deposit", "received"}, Direction: ledger.DirectionIncome},
	{Keywords: []string{"debited", "withdraw", "spent", "payment"}, Direction: ledger.DirectionExpense},
}

// Classify returns the direction of body, or false when no rule matches.
func Classify(body string) (ledger.Direction, bool) {
	lower := strings.ToLower(body)
	for _, rule := range DirectionRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Direction, true
			}
		}
	}
	return "", false
}
