package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{"whole number", decimal.NewFromInt(50), "R$ 50.00"},
		{"cents", decimal.RequireFromString("12.5"), "R$ 12.50"},
		{"rounds half up", decimal.RequireFromString("10.005"), "R$ 10.01"},
		{"zero", decimal.Zero, "R$ 0.00"},
		{"negative balance", decimal.NewFromInt(-200), "R$ -200.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBRL(tt.amount))
		})
	}
}

func TestParseFirstAmount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		ok       bool
	}{
		{"integer", "gastei 50 com café", "50", true},
		{"dot decimal", "paguei 12.75 de estacionamento", "12.75", true},
		{"comma decimal", "gastei 12,75 com lanche", "12.75", true},
		{"trailing separator", "recebi 100, obrigado", "100", true},
		{"first of several", "gastei 30 com 2 pizzas", "30", true},
		{"digits inside word", "pedido nº123 pago", "123", true},
		{"no number", "gastei muito com mercado", "0", false},
		{"empty", "", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ParseFirstAmount(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value.String())
		})
	}
}
