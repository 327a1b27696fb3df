package reply

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finzap/internal/ledger"
	"finzap/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpenseRecorded(t *testing.T) {
	msg := ExpenseRecorded(dec("50"), "café", dec("-50"))
	assert.Equal(t, "✅ Despesa de R$ 50.00 em 'café' registrada. Saldo: R$ -50.00.", msg)
}

func TestIncomeRecorded(t *testing.T) {
	msg := IncomeRecorded(dec("1000"), "salário", dec("950"))
	assert.Equal(t, "✅ Receita de R$ 1000.00 em 'salário' registrada. Saldo: R$ 950.00.", msg)
}

func TestMissingAmount(t *testing.T) {
	assert.Equal(t, "🤔 Não consegui identificar o valor da despesa.", MissingAmount(models.KindExpense))
	assert.Equal(t, "🤔 Não consegui identificar o valor da receita.", MissingAmount(models.KindIncome))
}

func TestBalance(t *testing.T) {
	assert.Equal(t, "💰 Seu saldo atual é de R$ 12.34.", Balance(dec("12.34")))
}

func TestRecentExpenses(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "Você ainda não registrou nenhuma despesa.", RecentExpenses(nil))
	})

	t.Run("with transactions", func(t *testing.T) {
		when := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
		msg := RecentExpenses([]models.Transaction{
			{Kind: models.KindExpense, Amount: dec("25.5"), Category: "mercado", Timestamp: when},
		})
		assert.True(t, strings.HasPrefix(msg, "🧾 *Suas últimas despesas:*\n"))
		assert.Contains(t, msg, "- R$ 25.50 em mercado (07/03)")
	})
}

func TestRecentIncomes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "Você ainda não registrou nenhuma receita.", RecentIncomes(nil))
	})

	t.Run("with transactions", func(t *testing.T) {
		when := time.Date(2025, time.December, 24, 10, 0, 0, 0, time.UTC)
		msg := RecentIncomes([]models.Transaction{
			{Kind: models.KindIncome, Amount: dec("1000"), Category: "salário", Timestamp: when},
		})
		assert.True(t, strings.HasPrefix(msg, "📈 *Suas últimas receitas:*\n"))
		assert.Contains(t, msg, "- R$ 1000.00 em salário (24/12)")
	})
}

func TestMonthlyReport(t *testing.T) {
	t.Run("empty month", func(t *testing.T) {
		summary := ledger.MonthlySummary{Year: 2025, Month: time.March}
		assert.Equal(t, "Você não tem transações em março.", MonthlyReport(summary))
	})

	t.Run("with activity", func(t *testing.T) {
		summary := ledger.MonthlySummary{
			Year:  2025,
			Month: time.March,
			IncomeByCategory: map[string]decimal.Decimal{
				"salário": dec("1000"),
			},
			ExpenseByCategory: map[string]decimal.Decimal{
				"mercado": dec("50"),
				"aluguel": dec("200"),
			},
			TotalIncome:  dec("1000"),
			TotalExpense: dec("250"),
			Net:          dec("750"),
		}

		msg := MonthlyReport(summary)

		assert.Contains(t, msg, "📊 *Resumo de março/2025:*")
		assert.Contains(t, msg, "🟢 *Receitas:* R$ 1000.00")
		assert.Contains(t, msg, "🔴 *Despesas:* R$ 250.00")
		assert.Contains(t, msg, "⚖️ *Balanço:* R$ 750.00")

		// Categories sorted by descending amount.
		aluguel := strings.Index(msg, "- aluguel: R$ 200.00")
		mercado := strings.Index(msg, "- mercado: R$ 50.00")
		assert.Greater(t, aluguel, 0)
		assert.Greater(t, mercado, 0)
		assert.Less(t, aluguel, mercado)
	})
}

func TestHelp(t *testing.T) {
	msg := Help()
	assert.Contains(t, msg, "🤖 Desculpe")
	assert.Contains(t, msg, "Comprei pão por 10 reais")
}
