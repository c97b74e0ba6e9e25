package entity

import (
	"strings"

	"github.com/google/uuid"
)

type CategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required,max=150"`
	Descricao *string `json:"descricao"`
}

type UnidadeRequest struct {
	Nome       string `json:"nome" validate:"required,max=100"`
	Abreviacao string `json:"abreviacao" validate:"required,max=20"`
	Tipo       string `json:"tipo" validate:"max=30"`
}

type FornecedorRequest struct {
	Nome     string  `json:"nome" validate:"required,max=200"`
	Contato  *string `json:"contato" validate:"omitempty,max=200"`
	Telefone *string `json:"telefone" validate:"omitempty,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=200"`
	Endereco *string `json:"endereco"`
}

// Normalize обрезает пробелы и превращает пустые необязательные поля в nil
func (r *FornecedorRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	for _, campo := range []**string{&r.Contato, &r.Telefone, &r.Email, &r.Endereco} {
		*campo = trimOptional(*campo)
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// InsumoRequest - тело POST/PUT /insumos. Цена обязательна, но 0 допустим.
type InsumoRequest struct {
	Nome                  string      `json:"nome" validate:"required,max=200"`
	CategoriaID           string      `json:"categoriaId" validate:"required"`
	UnidadeID             string      `json:"unidadeId" validate:"required"`
	PrecoPorUnidade       DecimalFlex `json:"precoPorUnidade" validate:"required"`
	FornecedorID          *string     `json:"fornecedorId"`
	EstoqueAtual          DecimalFlex `json:"estoqueAtual"`
	EstoqueMinimo         DecimalFlex `json:"estoqueMinimo"`
	CondicaoArmazenamento string      `json:"condicaoArmazenamento"`
	DataCompra            *string     `json:"dataCompra"`
}

type IngredienteRequest struct {
	InsumoID           string      `json:"insumoId"`
	Quantidade         DecimalFlex `json:"quantidade"`
	UnidadeID          string      `json:"unidadeId"`
	PorcentagemPadeiro DecimalFlex `json:"porcentagemPadeiro"`
}

// Completo - строка учитывается, только если есть и insumoId, и количество
func (r IngredienteRequest) Completo() bool {
	return strings.TrimSpace(r.InsumoID) != "" && r.Quantidade.Valid
}

// FichaRequest - тело POST/PUT /fichas-tecnicas.
// Ingredientes == nil означает "поле не прислано", пустой массив - "удалить все строки".
type FichaRequest struct {
	Nome                string               `json:"nome" validate:"required,max=200"`
	CategoriaID         string               `json:"categoriaId" validate:"required"`
	TempoPreparo        IntFlex              `json:"tempoPreparo"`
	TemperaturaForno    IntFlex              `json:"temperaturaForno"`
	ModoPreparo         string               `json:"modoPreparo" validate:"required"`
	PesoFinal           DecimalFlex          `json:"pesoFinal"`
	ObservacoesTecnicas *string              `json:"observacoesTecnicas"`
	Observacoes         *string              `json:"observacoes"`
	NivelDificuldade    string               `json:"nivelDificuldade"`
	Versao              IntFlex              `json:"versao"`
	Ingredientes        []IngredienteRequest `json:"ingredientes"`
}

// TextoObservacoes - POST присылает observacoesTecnicas, PUT - observacoes
func (r *FichaRequest) TextoObservacoes() *string {
	if r.ObservacoesTecnicas != nil {
		return r.ObservacoesTecnicas
	}
	return r.Observacoes
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DashboardResumo struct {
	TotalFichas         int64    `json:"totalFichas"`
	TotalInsumos        int64    `json:"totalInsumos"`
	TotalFornecedores   int64    `json:"totalFornecedores"`
	InsumosEstoqueBaixo []Insumo `json:"insumosEstoqueBaixo"`
}

// ParseOptionalUUID - пустая строка дает nil без ошибки
func ParseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &id, nil
}
