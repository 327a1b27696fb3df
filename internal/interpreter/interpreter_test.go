package interpreter

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finzap/internal/logging"
	"finzap/internal/models"
)

// stubBackend returns a fixed interpretation or error.
type stubBackend struct {
	in  models.Interpretation
	err error
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Interpret(context.Context, string) (models.Interpretation, error) {
	return s.in, s.err
}

func TestService_BackendFailureBecomesBackendError(t *testing.T) {
	logger := &logging.MockLogger{}
	svc := NewService(&stubBackend{err: errors.New("boom")}, logger)

	in := svc.Interpret(context.Background(), "gastei 50")

	assert.Equal(t, models.IntentBackendError, in.Intent)
	assert.False(t, in.Entities.HasAmount())
	// Failure detail goes to the logs for operators.
	assert.NotEmpty(t, logger.MessagesAt("error"))
}

func TestService_Normalization(t *testing.T) {
	tests := []struct {
		name             string
		in               models.Interpretation
		expectedCategory string
		expectAmount     bool
	}{
		{
			name: "category lowercased",
			in: models.Interpretation{
				Intent:   models.IntentAddExpense,
				Entities: models.ExtractedEntities{Amount: decimal.NewFromInt(10), Category: "Mercado"},
			},
			expectedCategory: "mercado",
			expectAmount:     true,
		},
		{
			name: "expense default category",
			in: models.Interpretation{
				Intent:   models.IntentAddExpense,
				Entities: models.ExtractedEntities{Amount: decimal.NewFromInt(10)},
			},
			expectedCategory: models.DefaultExpenseCategory,
			expectAmount:     true,
		},
		{
			name: "income default category",
			in: models.Interpretation{
				Intent:   models.IntentAddIncome,
				Entities: models.ExtractedEntities{Amount: decimal.NewFromInt(10)},
			},
			expectedCategory: models.DefaultIncomeCategory,
			expectAmount:     true,
		},
		{
			name: "no default for balance queries",
			in: models.Interpretation{
				Intent: models.IntentCheckBalance,
			},
			expectedCategory: "",
			expectAmount:     false,
		},
		{
			name: "negative amount treated as absent",
			in: models.Interpretation{
				Intent:   models.IntentAddExpense,
				Entities: models.ExtractedEntities{Amount: decimal.NewFromInt(-5), Category: "x"},
			},
			expectedCategory: "x",
			expectAmount:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubBackend{in: tt.in}, &logging.MockLogger{})

			out := svc.Interpret(context.Background(), "irrelevant")

			assert.Equal(t, tt.in.Intent, out.Intent)
			assert.Equal(t, tt.expectedCategory, out.Entities.Category)
			assert.Equal(t, tt.expectAmount, out.Entities.HasAmount())
		})
	}
}
