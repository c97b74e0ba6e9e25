package service

import (
	"errors"
	"fmt"

	"fichaspro/fichas-service/internal/app/fichas/repository"

	"github.com/shopspring/decimal"
)

// limiteNumeric - колонка NUMERIC(p,s). PostgreSQL округляет до s знаков,
// после округления модуль должен быть меньше 10^(p-s).
type limiteNumeric struct {
	escala int32
	teto   decimal.Decimal
}

func numeric(precisao, escala int32) limiteNumeric {
	return limiteNumeric{escala: escala, teto: decimal.New(1, precisao-escala)}
}

var (
	limitePreco       = numeric(12, 4)
	limiteEstoque     = numeric(12, 3)
	limiteQuantidade  = numeric(12, 3)
	limitePesoFinal   = numeric(10, 2)
	limitePorcentagem = numeric(7, 2)
)

func (l limiteNumeric) cabe(v decimal.Decimal) bool {
	return v.Round(l.escala).Abs().LessThan(l.teto)
}

func (l limiteNumeric) cabeNullable(v decimal.NullDecimal) bool {
	return !v.Valid || l.cabe(v.Decimal)
}

// falhaDeEscrita - значение, не влезшее в колонку, это ошибка клиента, а не 500
func falhaDeEscrita(op string, err error) error {
	if errors.Is(err, repository.ErrValueOutOfRange) {
		return invalido(MsgValorForaDoLimite)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
