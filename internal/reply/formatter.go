// Package reply renders ledger results into the Portuguese chat messages
// the bot sends back. All functions are pure; money is always shown with
// two decimal places and dates as day/month.
package reply

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finzap/internal/ledger"
	"finzap/internal/models"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the Portuguese name of the month.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// ExpenseRecorded confirms a recorded expense with the new balance.
func ExpenseRecorded(amount decimal.Decimal, category string, balance decimal.Decimal) string {
	return fmt.Sprintf("✅ Despesa de %s em '%s' registrada. Saldo: %s.",
		models.FormatBRL(amount), category, models.FormatBRL(balance))
}

// IncomeRecorded confirms a recorded income with the new balance.
func IncomeRecorded(amount decimal.Decimal, category string, balance decimal.Decimal) string {
	return fmt.Sprintf("✅ Receita de %s em '%s' registrada. Saldo: %s.",
		models.FormatBRL(amount), category, models.FormatBRL(balance))
}

// MissingAmount tells the user no usable amount was found in the message.
func MissingAmount(kind models.TransactionKind) string {
	return fmt.Sprintf("🤔 Não consegui identificar o valor da %s.", kind)
}

// Balance reports the current balance.
func Balance(balance decimal.Decimal) string {
	return fmt.Sprintf("💰 Seu saldo atual é de %s.", models.FormatBRL(balance))
}

// RecentExpenses lists the most recent expenses, newest first.
func RecentExpenses(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "Você ainda não registrou nenhuma despesa."
	}
	return transactionList("🧾 *Suas últimas despesas:*", transactions)
}

// RecentIncomes lists the most recent incomes, newest first.
func RecentIncomes(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "Você ainda não registrou nenhuma receita."
	}
	return transactionList("📈 *Suas últimas receitas:*", transactions)
}

func transactionList(header string, transactions []models.Transaction) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, tx := range transactions {
		sb.WriteString(fmt.Sprintf("- %s em %s (%s)\n",
			models.FormatBRL(tx.Amount), tx.Category, tx.Timestamp.Format("02/01")))
	}
	return sb.String()
}

// MonthlyReport renders the month's aggregate: totals, net and a
// per-category breakdown sorted by descending amount.
func MonthlyReport(summary ledger.MonthlySummary) string {
	if !summary.HasTransactions() {
		return fmt.Sprintf("Você não tem transações em %s.", MonthName(summary.Month))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Resumo de %s/%d:*\n\n", MonthName(summary.Month), summary.Year))

	sb.WriteString(fmt.Sprintf("🟢 *Receitas:* %s\n", models.FormatBRL(summary.TotalIncome)))
	writeCategoryBreakdown(&sb, summary.IncomeByCategory)

	sb.WriteString(fmt.Sprintf("🔴 *Despesas:* %s\n", models.FormatBRL(summary.TotalExpense)))
	writeCategoryBreakdown(&sb, summary.ExpenseByCategory)

	sb.WriteString("--------------------\n")
	sb.WriteString(fmt.Sprintf("⚖️ *Balanço:* %s", models.FormatBRL(summary.Net)))
	return sb.String()
}

// writeCategoryBreakdown appends one line per category, largest amount
// first; ties break alphabetically to keep the output deterministic.
func writeCategoryBreakdown(sb *strings.Builder, byCategory map[string]decimal.Decimal) {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		cmp := byCategory[categories[i]].Cmp(byCategory[categories[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return categories[i] < categories[j]
	})

	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", category, models.FormatBRL(byCategory[category])))
	}
}

// Help is the generic reply for unclear messages and backend failures.
func Help() string {
	return "🤖 Desculpe, não consegui processar sua solicitação no momento.\n\n" +
		"Tente algo como:\n" +
		"- `Comprei pão por 10 reais`\n" +
		"- `Recebi um pix de 500`\n" +
		"- `Quanto eu tenho na conta?`"
}
