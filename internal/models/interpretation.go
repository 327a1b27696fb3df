package models

import "github.com/shopspring/decimal"

// Fallback categories applied when a recording message names none.
const (
	DefaultExpenseCategory = "geral"
	DefaultIncomeCategory  = "receitas"
)

// ExtractedEntities holds the structured values pulled out of a message.
// A zero Amount means no usable amount was found.
type ExtractedEntities struct {
	Amount   decimal.Decimal
	Category string
}

// HasAmount reports whether a usable (strictly positive) amount was extracted.
func (e ExtractedEntities) HasAmount() bool {
	return e.Amount.IsPositive()
}

// HasCategory reports whether a category was extracted.
func (e ExtractedEntities) HasCategory() bool {
	return e.Category != ""
}

// Interpretation is the result of running a message through an
// interpretation backend: what the user wants plus the extracted values.
type Interpretation struct {
	Intent   Intent
	Entities ExtractedEntities
}
