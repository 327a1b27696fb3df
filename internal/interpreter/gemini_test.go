package interpreter

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finzap/internal/logging"
	"finzap/internal/models"
)

func TestGeminiBackend_MissingAPIKeyShortCircuits(t *testing.T) {
	backend := NewGeminiBackend("", "gemini-1.5-flash-latest", 25*time.Second, &logging.MockLogger{})

	_, err := backend.Interpret(context.Background(), "gastei 50 com café")

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestDecodeInterpretation(t *testing.T) {
	tests := []struct {
		name             string
		raw              string
		expectError      bool
		expectedIntent   models.Intent
		expectedAmount   string
		expectAmount     bool
		expectedCategory string
	}{
		{
			name:             "full payload",
			raw:              `{"intent": "add_expense", "entities": {"value": 50, "category": "café"}}`,
			expectedIntent:   models.IntentAddExpense,
			expectedAmount:   "50",
			expectAmount:     true,
			expectedCategory: "café",
		},
		{
			name:           "absent entities tolerated",
			raw:            `{"intent": "check_balance"}`,
			expectedIntent: models.IntentCheckBalance,
		},
		{
			name:             "absent value tolerated",
			raw:              `{"intent": "add_expense", "entities": {"category": "mercado"}}`,
			expectedIntent:   models.IntentAddExpense,
			expectedCategory: "mercado",
		},
		{
			name:           "unknown intent degrades to unclear",
			raw:            `{"intent": "delete_account", "entities": {"value": 10}}`,
			expectedIntent: models.IntentUnclear,
			expectedAmount: "10",
			expectAmount:   true,
		},
		{
			name:           "negative value treated as absent",
			raw:            `{"intent": "add_income", "entities": {"value": -3}}`,
			expectedIntent: models.IntentAddIncome,
		},
		{
			name:             "markdown fenced payload",
			raw:              "```json\n{\"intent\": \"add_income\", \"entities\": {\"value\": 1000, \"category\": \"salário\"}}\n```",
			expectedIntent:   models.IntentAddIncome,
			expectedAmount:   "1000",
			expectAmount:     true,
			expectedCategory: "salário",
		},
		{
			name:        "malformed body",
			raw:         "sorry, I cannot help with that",
			expectError: true,
		},
		{
			name:        "empty body",
			raw:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decodeInterpretation(tt.raw)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.expectedIntent, in.Intent)
			assert.Equal(t, tt.expectAmount, in.Entities.HasAmount())
			if tt.expectAmount {
				expected, err := decimal.NewFromString(tt.expectedAmount)
				require.NoError(t, err)
				assert.True(t, expected.Equal(in.Entities.Amount),
					"expected %s, got %s", expected, in.Entities.Amount)
			}
			assert.Equal(t, tt.expectedCategory, in.Entities.Category)
		})
	}
}
