package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountCleaner = strings.NewReplacer(
	"$", "",
	"£", "",
	"€", "",
	"¥", "",
	",", "",
	"(", "-",
	")", "",
)

// NormalizeAmount converts a raw amount like "$1,234.56" or "(12.00)" into a decimal.
// Parenthesized values are negative. Blank or non-numeric input yields zero;
// a bad amount never fails the document.
func NormalizeAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(amountCleaner.Replace(strings.TrimSpace(raw)))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
