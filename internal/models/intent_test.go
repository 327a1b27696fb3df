package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		tag      string
		expected Intent
	}{
		{"add_expense", IntentAddExpense},
		{"add_income", IntentAddIncome},
		{"check_balance", IntentCheckBalance},
		{"list_expenses", IntentListExpenses},
		{"list_incomes", IntentListIncomes},
		{"monthly_report", IntentMonthlyReport},
		{"unclear", IntentUnclear},
		{"delete_everything", IntentUnclear},
		{"backend_error", IntentUnclear}, // internal marker, not a wire tag
		{"", IntentUnclear},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseIntent(tt.tag))
		})
	}
}
