package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/currency"
)

const currencySymbols = "₹$€£¥"

var (
	// "rs" / "inr" as a standalone marker: "Rs.500", "INR 500", "rs 20".
	localCurrencyMarker = regexp.MustCompile(`\b(?i:rs|inr)(?:[^A-Za-z]|$)`)

	// Upper-case three letter tokens with a number next to them: "USD 12",
	// "EUR:5", "40 GBP". A code glued to digits ("XXX1234") is a masked
	// account, not an amount.
	currencyCodeBeforeNumber = regexp.MustCompile(`\b([A-Z]{3})(?:\s+|\s*[.:]\s*)\d`)
	currencyCodeAfterNumber  = regexp.MustCompile(`\d\s*([A-Z]{3})\b`)
)

// ISO 4217 codes that are not money: "no currency", testing, precious
// metals and supranational units.
var nonMonetaryCodes = map[string]bool{
	"XXX": true, "XTS": true,
	"XAU": true, "XAG": true, "XPT": true, "XPD": true,
	"XDR": true, "XSU": true, "XUA": true,
	"XBA": true, "XBB": true, "XBC": true, "XBD": true,
}

func isCurrencyCode(token string) bool {
	if nonMonetaryCodes[token] {
		return false
	}
	_, err := currency.ParseISO(token)
	return err == nil
}

// hasCurrencyMarker reports whether body carries a currency symbol, the
// literal rs/inr, or an ISO 4217 code beside a number.
func hasCurrencyMarker(body string) bool {
	if strings.ContainsAny(body, currencySymbols) {
		return true
	}
	if localCurrencyMarker.MatchString(body) {
		return true
	}
	for _, re := range []*regexp.Regexp{currencyCodeBeforeNumber, currencyCodeAfterNumber} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if isCurrencyCode(m[1]) {
				return true
			}
		}
	}
	return false
}
