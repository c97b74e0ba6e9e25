package pdf

import (
	"bytes"
	"testing"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFicha() *entity.FichaTecnica {
	tempo := 45
	obs := "Descansar a massa por 30 minutos."
	return &entity.FichaTecnica{
		ID:               uuid.New(),
		Nome:             "Pão de Açúcar Especial",
		Categoria:        &entity.CategoriaReceita{Nome: "Pães"},
		TempoPreparo:     &tempo,
		ModoPreparo:      "Misturar, sovar, modelar e assar.",
		Observacoes:      &obs,
		NivelDificuldade: entity.Intermediario,
		Versao:           3,
		CreatedAt:        time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
		Ingredientes: []entity.IngredienteFicha{
			{
				Quantidade:         decimal.NewFromInt(1000),
				PorcentagemPadeiro: decimal.NewNullDecimal(decimal.NewFromInt(100)),
				Insumo: &entity.Insumo{
					Nome:    "Farinha",
					Unidade: &entity.UnidadeMedida{Abreviacao: "g"},
				},
			},
		},
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	out, err := NewFichaRenderer().Render(sampleFicha())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestRender_EmptyFicha(t *testing.T) {
	out, err := NewFichaRenderer().Render(&entity.FichaTecnica{Nome: "Vazia", Versao: 1})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "ficha-pao-de-acucar-especial-v3.pdf", FileName(sampleFicha()))
	assert.Equal(t, "ficha-sem-nome-v1.pdf", FileName(&entity.FichaTecnica{Nome: "***", Versao: 1}))
}

func TestBlocksShowNAWhenMissing(t *testing.T) {
	assert.Equal(t, "N/A", minutos(nil))
	assert.Equal(t, "N/A", graus(nil))
	assert.Equal(t, "N/A", nivel(""))
	v := 180
	assert.Equal(t, "180 °C", graus(&v))
}
