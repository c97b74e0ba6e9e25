package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLimiteNumeric(t *testing.T) {
	tests := []struct {
		name   string
		limite limiteNumeric
		valor  string
		cabe   bool
	}{
		{"percentage at max", limitePorcentagem, "99999.99", true},
		{"percentage rounds over max", limitePorcentagem, "99999.995", false},
		{"percentage too large", limitePorcentagem, "100000", false},
		{"negative within range", limitePorcentagem, "-99999.99", true},
		{"peso final extra scale is rounded", limitePesoFinal, "12.3456", true},
		{"peso final too large", limitePesoFinal, "100000000", false},
		{"preco max", limitePreco, "99999999.9999", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cabe, tt.limite.cabe(decimal.RequireFromString(tt.valor)))
		})
	}

	assert.True(t, limitePesoFinal.cabeNullable(decimal.NullDecimal{}))
}
