// Package ledger owns the per-sender account state: balance plus an
// ordered transaction log. Accounts are memory-resident and live for the
// process lifetime; durability is deliberately someone else's concern.
package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"finzap/internal/models"
)

// ErrInvalidAmount is returned when a mutation is attempted with a zero or
// negative amount. The caller treats it as "could not identify the amount".
var ErrInvalidAmount = errors.New("transaction amount must be positive")

// Account is the ledger state of one sender. The balance always equals the
// sum of signed transaction amounts (incomes positive, expenses negative);
// the transaction log is kept in insertion order.
type Account struct {
	Balance      decimal.Decimal
	Transactions []models.Transaction
}

// Ledger maps sender identities to accounts. All operations lazily create
// an account with zero balance on first touch. A single mutex guards the
// map and every account: mutations (balance update + log append) are
// atomic as a unit, and no lock is ever held across an external call.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*Account
	now      func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		accounts: make(map[string]*Account),
		now:      time.Now,
	}
}

// SetClock replaces the timestamp source. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// RecordExpense appends an expense for the sender and decrements the
// balance, returning the new balance. Non-positive amounts leave the
// account untouched and return ErrInvalidAmount.
func (l *Ledger) RecordExpense(sender string, amount decimal.Decimal, category string) (decimal.Decimal, error) {
	return l.record(sender, models.KindExpense, amount, category)
}

// RecordIncome appends an income for the sender and increments the
// balance, returning the new balance.
func (l *Ledger) RecordIncome(sender string, amount decimal.Decimal, category string) (decimal.Decimal, error) {
	return l.record(sender, models.KindIncome, amount, category)
}

func (l *Ledger) record(sender string, kind models.TransactionKind, amount decimal.Decimal, category string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	account := l.accountLocked(sender)
	tx := models.Transaction{
		Kind:      kind,
		Amount:    amount,
		Category:  category,
		Timestamp: l.now(),
	}

	account.Transactions = append(account.Transactions, tx)
	if kind == models.KindExpense {
		account.Balance = account.Balance.Sub(amount)
	} else {
		account.Balance = account.Balance.Add(amount)
	}

	return account.Balance, nil
}

// Balance returns the sender's current balance.
func (l *Ledger) Balance(sender string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accountLocked(sender).Balance
}

// RecentExpenses returns up to limit expenses, most recent first.
func (l *Ledger) RecentExpenses(sender string, limit int) []models.Transaction {
	return l.recent(sender, models.KindExpense, limit)
}

// RecentIncomes returns up to limit incomes, most recent first.
func (l *Ledger) RecentIncomes(sender string, limit int) []models.Transaction {
	return l.recent(sender, models.KindIncome, limit)
}

func (l *Ledger) recent(sender string, kind models.TransactionKind, limit int) []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	account := l.accountLocked(sender)
	var out []models.Transaction
	for i := len(account.Transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if account.Transactions[i].Kind == kind {
			out = append(out, account.Transactions[i])
		}
	}
	return out
}

// MonthlySummary aggregates one month of a sender's transactions.
type MonthlySummary struct {
	Year  int
	Month time.Month

	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal

	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
}

// HasTransactions reports whether the month contained any activity.
func (s MonthlySummary) HasTransactions() bool {
	return len(s.IncomeByCategory) > 0 || len(s.ExpenseByCategory) > 0
}

// MonthlyAggregate filters the sender's log to the given year/month,
// groups amounts by category (exact match on the stored lowercase
// category) and computes totals plus net = income − expense.
func (l *Ledger) MonthlyAggregate(sender string, year int, month time.Month) MonthlySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := MonthlySummary{
		Year:              year,
		Month:             month,
		IncomeByCategory:  make(map[string]decimal.Decimal),
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	for _, tx := range l.accountLocked(sender).Transactions {
		if !tx.InMonth(year, month) {
			continue
		}
		if tx.Kind == models.KindIncome {
			summary.IncomeByCategory[tx.Category] = summary.IncomeByCategory[tx.Category].Add(tx.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		} else {
			summary.ExpenseByCategory[tx.Category] = summary.ExpenseByCategory[tx.Category].Add(tx.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		}
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// accountLocked returns the sender's account, creating it with zero
// balance on first touch. Callers must hold l.mu.
func (l *Ledger) accountLocked(sender string) *Account {
	account, ok := l.accounts[sender]
	if !ok {
		account = &Account{Balance: decimal.Zero}
		l.accounts[sender] = account
	}
	return account
}
