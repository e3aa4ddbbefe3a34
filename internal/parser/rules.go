package parser

import (
	"regexp"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

// amountPattern is a currency marker, optional punctuation, then a number
// with optional thousands separators (Indian or western grouping) and an
// optional decimal part. Group 1 is the marker, group 2 the number.
var amountPattern = regexp.MustCompile(
	`(\b(?i:rs|inr)|[₹$€£¥]|\b[A-Z]{3})\s*[.:]?\s*(\d+(?:,\d+)*(?:\.\d+)?)`,
)

// DateRule pairs a date shape with the layout that parses it.
type DateRule struct {
	Name    string
	Pattern *regexp.Regexp
	Layout  string
}

// DateRules are tried in order: day-first shapes, then year-first, then
// two-digit years.
var DateRules = []DateRule{
	{"dd-mm-yyyy", regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`), "2-1-2006"},
	{"dd/mm/yyyy", regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`), "2/1/2006"},
	{"dd mm yyyy", regexp.MustCompile(`\b\d{1,2} \d{1,2} \d{4}\b`), "2 1 2006"},
	{"dd-mon-yyyy", regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`), "2-Jan-2006"},
	{"dd/mon/yyyy", regexp.MustCompile(`\b\d{1,2}/[A-Za-z]{3}/\d{4}\b`), "2/Jan/2006"},
	{"dd mon yyyy", regexp.MustCompile(`\b\d{1,2} [A-Za-z]{3} \d{4}\b`), "2 Jan 2006"},
	{"yyyy-mm-dd", regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`), "2006-1-2"},
	{"yyyy/mm/dd", regexp.MustCompile(`\b\d{4}/\d{1,2}/\d{1,2}\b`), "2006/1/2"},
	{"yyyy mm dd", regexp.MustCompile(`\b\d{4} \d{1,2} \d{1,2}\b`), "2006 1 2"},
	{"dd-mm-yy", regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{2}\b`), "2-1-06"},
	{"dd/mm/yy", regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2}\b`), "2/1/06"},
	{"dd-mon-yy", regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{2}\b`), "2-Jan-06"},
}

// DescriptionRule is a preposition anchor; the description is whatever
// follows it up to the next clause boundary.
type DescriptionRule struct {
	Name   string
	Anchor *regexp.Regexp
}

var DescriptionRules = []DescriptionRule{
	{"info", regexp.MustCompile(`(?i)\binfo:\s*`)},
	{"ref", regexp.MustCompile(`(?i)\bref:\s*`)},
	{"towards", regexp.MustCompile(`(?i)\btowards\s+`)},
	{"for", regexp.MustCompile(`(?i)\bfor\s+`)},
	{"by", regexp.MustCompile(`(?i)\bby\s+`)},
	{"at", regexp.MustCompile(`(?i)\bat\s+`)},
	{"from", regexp.MustCompile(`(?i)\bfrom\s+`)},
	{"to", regexp.MustCompile(`(?i)\bto\s+`)},
}

// CategoryRule assigns Category when any keyword occurs in the body.
type CategoryRule struct {
	Keywords []string
	Category string
}

// CategoryUncategorized is what ExtractCategory returns when no rule hits.
const CategoryUncategorized = ledger.CategoryUncategorized

var CategoryRules = []CategoryRule{
	{Keywords: []string{"salary", "income"}, Category: "salary"},
	{Keywords: []string{"atm", "withdrawn"}, Category: "atm_withdrawal"},
	{Keywords: []string{"upi"}, Category: "upi_payment"},
	{Keywords: []string{"bill"}, Category: "bill_payment"},
	{Keywords: []string{"shop", "store", "mart"}, Category: "shopping"},
	{Keywords: []string{"transfer"}, Category: "transfer"},
}

var (
	// Masked or plain account numbers: "A/c XX1234", "Acct no. **5678".
	accountPattern = regexp.MustCompile(`(?i)\b(?:a/c|acct|account)\s*(?:no\.?|number)?\s*[:.]?\s*([x*]+\d+|\d{4,})`)

	// "Avl Bal: Rs. 5,000.00", "balance is INR 120".
	balancePattern = regexp.MustCompile(`(?i)\bbal(?:ance)?\b\s*(?:is)?\s*:?\s*(?:(?:rs|inr)\.?|₹)?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)
)
