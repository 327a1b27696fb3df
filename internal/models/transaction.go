package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes expenses from incomes.
type TransactionKind string

const (
	KindExpense TransactionKind = "despesa"
	KindIncome  TransactionKind = "receita"
)

// Transaction is one recorded expense or income event. Transactions are
// immutable once created: they are appended to an account's log and never
// edited or deleted.
type Transaction struct {
	Kind      TransactionKind
	Amount    decimal.Decimal
	Category  string
	Timestamp time.Time
}

// InMonth reports whether the transaction falls in the given year and month.
func (t Transaction) InMonth(year int, month time.Month) bool {
	return t.Timestamp.Year() == year && t.Timestamp.Month() == month
}
