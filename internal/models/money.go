package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches the first numeric token in free text: digits with
// an optional decimal separator (dot or comma) and optional decimals.
var amountPattern = regexp.MustCompile(`(\d+[.,]?\d*)`)

// FormatBRL renders a monetary value as "R$ <amount>" with exactly two
// decimal places, e.g. "R$ 50.00".
func FormatBRL(amount decimal.Decimal) string {
	return fmt.Sprintf("R$ %s", amount.StringFixed(2))
}

// ParseFirstAmount extracts the first numeric token from text and parses it
// as a non-negative decimal. A comma separator is normalized to a dot.
// Multiple numbers in the text are a documented limitation: only the first
// one is considered. Returns decimal.Zero and false when no number appears.
func ParseFirstAmount(text string) (decimal.Decimal, bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return decimal.Zero, false
	}
	normalized := strings.ReplaceAll(match, ",", ".")
	// The pattern admits a dangling separator ("100,"); treat it as integral.
	normalized = strings.TrimSuffix(normalized, ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}
	return value, true
}
